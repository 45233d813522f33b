package model

import (
	"github.com/dustin/go-humanize"
)

// ImageStatus describes an image's install state relative to the registry.
type ImageStatus string

const (
	StatusUpToDate        ImageStatus = "Up to date"
	StatusUpdateAvailable ImageStatus = "Update available"
	StatusNotInstalled    ImageStatus = "Not installed"
	StatusLocal           ImageStatus = "Local image"
)

// ImageType distinguishes registry images from locally built ones.
type ImageType string

const (
	TypeRemote ImageType = "remote"
	TypeLocal  ImageType = "local"
)

// Image is one environment image, merged from local engine state and
// remote registry metadata.
type Image struct {
	Tag          string
	ID           string
	Status       ImageStatus
	Type         ImageType
	DiskSize     int64 // bytes on disk, 0 when not installed
	DownloadSize int64 // compressed size in the registry, 0 when unknown
}

// Key returns the unique display key used for interactive selection.
func (i Image) Key() string {
	return i.Tag
}

// Installed reports whether the image exists locally.
func (i Image) Installed() bool {
	return i.DiskSize > 0
}

// SizeText returns the size relevant at normal verbosity: disk size when
// installed, otherwise the download size.
func (i Image) SizeText() string {
	if i.Installed() {
		return humanize.Bytes(uint64(i.DiskSize))
	}
	return i.DownloadSizeText()
}

// DiskSizeText formats the on-disk size.
func (i Image) DiskSizeText() string {
	if i.DiskSize == 0 {
		return "-"
	}
	return humanize.Bytes(uint64(i.DiskSize))
}

// DownloadSizeText formats the compressed registry size.
func (i Image) DownloadSizeText() string {
	if i.DownloadSize == 0 {
		return "-"
	}
	return humanize.Bytes(uint64(i.DownloadSize))
}
