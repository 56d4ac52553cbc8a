package handler

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gestimo/gestimo/internal/apiserver/database"
	"github.com/gestimo/gestimo/internal/apiserver/middleware"
	"github.com/gestimo/gestimo/internal/apiserver/storage"
	"github.com/gestimo/gestimo/internal/auth/jwt"
	"github.com/gestimo/gestimo/internal/common/cnst"
	"github.com/gestimo/gestimo/internal/common/config"
	"github.com/gestimo/gestimo/internal/common/errorx"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler carries the dependencies shared by all route handlers
type Handler struct {
	db         database.Database
	jwtService *jwt.Service
	store      *storage.DiskStore
	cfg        *config.APIServerConfig
	logger     *zap.Logger
	errs       *errorx.ErrorHandler
}

// NewHandler creates a new handler
func NewHandler(db database.Database, jwtService *jwt.Service, store *storage.DiskStore, cfg *config.APIServerConfig, logger *zap.Logger) *Handler {
	return &Handler{
		db:         db,
		jwtService: jwtService,
		store:      store,
		cfg:        cfg,
		logger:     logger,
		errs:       errorx.NewErrorHandler(logger),
	}
}

// bindID parses the :id route parameter
func bindID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errorx.NewValidation("invalid id")
	}
	return uint(id), nil
}

// bindingError turns a gin binding failure into a validation error carrying
// one detail per offending field
func bindingError(err error) *errorx.APIError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		apiErr := errorx.NewValidation("request validation failed")
		for _, fe := range verrs {
			apiErr.WithDetail(fe.Field(), fe.Tag())
		}
		return apiErr
	}
	return errorx.NewValidation(err.Error())
}

// mapStoreErr converts store sentinel errors onto the API error taxonomy.
// Anything unrecognized passes through and is treated as internal.
func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrPropertyNotFound),
		errors.Is(err, database.ErrUnitNotFound),
		errors.Is(err, database.ErrTenantNotFound),
		errors.Is(err, database.ErrLeaseNotFound),
		errors.Is(err, database.ErrPaymentNotFound),
		errors.Is(err, database.ErrPaymentModeNotFound),
		errors.Is(err, database.ErrDocumentNotFound):
		return errorx.NewNotFound(err.Error())
	case errors.Is(err, database.ErrDuplicateEmail),
		errors.Is(err, database.ErrDuplicateUnitReference),
		errors.Is(err, database.ErrDuplicateLeaseReference),
		errors.Is(err, database.ErrDuplicatePaymentModeCode),
		errors.Is(err, database.ErrUnitNotAvailable),
		errors.Is(err, database.ErrUnitAlreadyLeased),
		errors.Is(err, database.ErrUnitUnderActiveLease),
		errors.Is(err, database.ErrLeaseAlreadyTerminated),
		errors.Is(err, database.ErrLeaseTerminated),
		errors.Is(err, database.ErrPropertyHasUnits),
		errors.Is(err, database.ErrUnitHasLeases),
		errors.Is(err, database.ErrTenantHasLeases),
		errors.Is(err, database.ErrPaymentModeInUse),
		errors.Is(err, database.ErrUnitStatusManaged):
		return errorx.NewConflict(err.Error())
	default:
		return err
	}
}

// audit writes an audit-log entry for a mutating operation. Audit failures
// are logged, never surfaced: the mutation itself already succeeded.
func (h *Handler) audit(c *gin.Context, action cnst.ActionType, entityType string, entityID uint, oldObj, newObj any) {
	entry := &database.AuditLog{
		Action:     string(action),
		EntityType: entityType,
		EntityID:   entityID,
		IP:         c.ClientIP(),
	}
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		entry.UserID = claims.UserID
	}
	if oldObj != nil {
		if data, err := json.Marshal(oldObj); err == nil {
			entry.OldValue = string(data)
		}
	}
	if newObj != nil {
		if data, err := json.Marshal(newObj); err == nil {
			entry.NewValue = string(data)
		}
	}
	if err := h.db.CreateAuditLog(c.Request.Context(), entry); err != nil {
		h.logger.Error("failed to write audit log",
			zap.String("action", string(action)),
			zap.String("entity_type", entityType),
			zap.Uint("entity_id", entityID),
			zap.Error(err))
	}
}
