package dto

// UploadDocumentRequest represents the multipart form fields of an upload.
// The file itself travels in the "file" part.
type UploadDocumentRequest struct {
	OwnerType string `form:"owner_type" binding:"required,oneof=LEASES PAYMENTS"`
	OwnerID   uint   `form:"owner_id" binding:"required"`
	DocType   string `form:"doc_type,omitempty"`
}
