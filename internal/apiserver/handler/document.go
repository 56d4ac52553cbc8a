package handler

import (
	"net/http"
	"strconv"

	"github.com/gestimo/gestimo/internal/apiserver/database"
	"github.com/gestimo/gestimo/internal/apiserver/middleware"
	"github.com/gestimo/gestimo/internal/common/cnst"
	"github.com/gestimo/gestimo/internal/common/dto"
	"github.com/gestimo/gestimo/internal/common/errorx"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ownerExists checks that the entity a document is attached to is real
func (h *Handler) ownerExists(c *gin.Context, ownerType string, ownerID uint) error {
	switch ownerType {
	case cnst.EntityLeases:
		_, err := h.db.GetLeaseByID(c.Request.Context(), ownerID)
		return err
	case cnst.EntityPayments:
		_, err := h.db.GetPaymentByID(c.Request.Context(), ownerID)
		return err
	default:
		return errorx.NewValidation("invalid owner_type")
	}
}

// UploadDocument handles a multipart document upload. The file is written to
// disk first and removed again if the metadata row cannot be created, so disk
// and database never disagree.
func (h *Handler) UploadDocument(c *gin.Context) {
	var req dto.UploadDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}
	if err := h.ownerExists(c, req.OwnerType, req.OwnerID); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.errs.Handle(c, errorx.NewValidation("file is required"))
		return
	}
	if max := h.cfg.Storage.MaxFileSize; max > 0 && file.Size > max {
		h.errs.Handle(c, errorx.NewValidation("file exceeds the maximum allowed size"))
		return
	}

	src, err := file.Open()
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	defer src.Close()

	key := h.store.NewKey(file.Filename)
	if _, err := h.store.Save(key, src); err != nil {
		h.errs.Handle(c, err)
		return
	}

	doc := &database.Document{
		OwnerType: req.OwnerType,
		OwnerID:   req.OwnerID,
		FileKey:   key,
		FileName:  file.Filename,
		DocType:   req.DocType,
	}
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		doc.UploadedBy = claims.UserID
	}
	if err := h.db.CreateDocument(c.Request.Context(), doc); err != nil {
		if rmErr := h.store.Remove(key); rmErr != nil {
			h.logger.Error("failed to remove orphaned file",
				zap.String("key", key),
				zap.Error(rmErr))
		}
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionUpload, cnst.EntityDocuments, doc.ID, nil, doc)
	c.JSON(http.StatusCreated, doc)
}

// ListDocuments handles listing documents attached to one entity
func (h *Handler) ListDocuments(c *gin.Context) {
	ownerType := c.Query("owner_type")
	if ownerType != cnst.EntityLeases && ownerType != cnst.EntityPayments {
		h.errs.Handle(c, errorx.NewValidation("invalid owner_type"))
		return
	}
	ownerID, err := strconv.ParseUint(c.Query("owner_id"), 10, 32)
	if err != nil || ownerID == 0 {
		h.errs.Handle(c, errorx.NewValidation("invalid owner_id"))
		return
	}

	docs, err := h.db.ListDocumentsByOwner(c.Request.Context(), ownerType, uint(ownerID))
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// DownloadDocument streams the stored file back with its original name
func (h *Handler) DownloadDocument(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	doc, err := h.db.GetDocumentByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	path, err := h.store.Path(doc.FileKey)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	c.FileAttachment(path, doc.FileName)
}

// DeleteDocument removes the metadata row and the stored file. A file that
// cannot be removed is logged; the row is already gone.
func (h *Handler) DeleteDocument(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	doc, err := h.db.GetDocumentByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	if err := h.db.DeleteDocument(c.Request.Context(), id); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	if err := h.store.Remove(doc.FileKey); err != nil {
		h.logger.Error("failed to remove stored file",
			zap.String("key", doc.FileKey),
			zap.Error(err))
	}

	h.audit(c, cnst.ActionDelete, cnst.EntityDocuments, id, doc, nil)
	c.Status(http.StatusNoContent)
}
