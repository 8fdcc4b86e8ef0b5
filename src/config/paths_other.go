//go:build !windows

package config

type folder int

const (
	folderPictures folder = iota
	folderDocuments
)

func knownFolder(folder) (string, bool) {
	return "", false
}
