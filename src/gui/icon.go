package gui

import "fyne.io/fyne/v2"

// SVG content for the window icon: a picture frame with text lines beside it.
const iconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16" width="16" height="16">
  <!-- Picture -->
  <rect x="1" y="2" width="7" height="6" fill="none" stroke="#0078d4" stroke-width="1"/>
  <polyline points="1.5,7.5 3.5,5 5,6.5 6,5.5 7.5,7.5" fill="none" stroke="#0078d4" stroke-width="0.8"/>
  <circle cx="6" cy="3.8" r="0.7" fill="#0078d4"/>

  <!-- Arrow -->
  <line x1="8.5" y1="9" x2="10.5" y2="11" stroke="#666666" stroke-width="0.8" stroke-linecap="round"/>

  <!-- Text lines -->
  <line x1="9" y1="12" x2="15" y2="12" stroke="#333333" stroke-width="1" stroke-linecap="round"/>
  <line x1="9" y1="13.8" x2="14" y2="13.8" stroke="#333333" stroke-width="1" stroke-linecap="round"/>
  <line x1="9" y1="15.3" x2="15" y2="15.3" stroke="#333333" stroke-width="1" stroke-linecap="round"/>
</svg>`

var appIcon = fyne.NewStaticResource("text-recognition.svg", []byte(iconSVG))
