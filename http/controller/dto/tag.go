package dto

// UpdateTagRequest is the PUT body for an existing tag. The pointer
// distinguishes a missing tag-name from an empty one.
type UpdateTagRequest struct {
	TagName *string `json:"tag-name"`
}
