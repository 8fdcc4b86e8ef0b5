//go:build windows

package config

import "golang.org/x/sys/windows"

type folder int

const (
	folderPictures folder = iota
	folderDocuments
)

// knownFolder follows shell folder redirection (OneDrive, roaming profiles).
func knownFolder(f folder) (string, bool) {
	id := windows.FOLDERID_Pictures
	if f == folderDocuments {
		id = windows.FOLDERID_Documents
	}
	path, err := windows.KnownFolderPath(id, windows.KF_FLAG_DEFAULT)
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}
