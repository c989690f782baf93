package models

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// ContentType is the upload content type for a declared media type. The
// actual bytes are not inspected.
func (t MediaType) ContentType() string {
	if t == MediaImage {
		return "image/jpeg"
	}
	return "video/mp4"
}

func (t MediaType) Valid() bool {
	return t == MediaImage || t == MediaVideo
}

// MediaRef points at one uploaded object in the media bucket.
type MediaRef struct {
	Type MediaType `json:"type" validate:"required,oneof=image video"`
	URL  string    `json:"url" validate:"required,url"`
}

// PendingMediaFile is a locally picked file that has not been uploaded yet.
// URI is either a fetchable URL (http, https, data) or a local path.
type PendingMediaFile struct {
	Type     MediaType
	URI      string
	Filename string
}
