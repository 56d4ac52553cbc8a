package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// store is the gorm-backed implementation shared by all drivers.
// Dialect selection happens in the per-driver constructors.
type store struct {
	db *gorm.DB
}

func newStore(db *gorm.DB) (*store, error) {
	if err := db.AutoMigrate(
		&User{},
		&Property{},
		&Unit{},
		&Tenant{},
		&Lease{},
		&PaymentMode{},
		&Payment{},
		&Document{},
		&AuditLog{},
	); err != nil {
		return nil, err
	}
	return &store{db: db}, nil
}

// Close closes the database connection
func (s *store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// ---- Users ----

func (s *store) CreateUser(ctx context.Context, user *User) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEmail
	}
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (s *store) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (s *store) UpdateUser(ctx context.Context, user *User) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).
		Where("email = ? AND id <> ?", user.Email, user.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEmail
	}
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *store) DeleteUser(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *store) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := s.db.WithContext(ctx).Order("id asc").Find(&users).Error
	return users, err
}

// ---- Properties ----

func (s *store) CreateProperty(ctx context.Context, property *Property) error {
	return s.db.WithContext(ctx).Create(property).Error
}

func (s *store) GetPropertyByID(ctx context.Context, id uint) (*Property, error) {
	var property Property
	if err := s.db.WithContext(ctx).Preload("Units").First(&property, id).Error; err != nil {
		return nil, notFound(err, ErrPropertyNotFound)
	}
	return &property, nil
}

func (s *store) UpdateProperty(ctx context.Context, property *Property) error {
	return s.db.WithContext(ctx).Omit("Units").Save(property).Error
}

func (s *store) DeleteProperty(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var units int64
		if err := tx.Model(&Unit{}).Where("property_id = ?", id).Count(&units).Error; err != nil {
			return err
		}
		if units > 0 {
			return ErrPropertyHasUnits
		}
		res := tx.Delete(&Property{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPropertyNotFound
		}
		return nil
	})
}

func (s *store) ListProperties(ctx context.Context) ([]*Property, error) {
	var properties []*Property
	err := s.db.WithContext(ctx).Order("id asc").Find(&properties).Error
	return properties, err
}

func (s *store) ListPropertiesWithUnits(ctx context.Context) ([]*Property, error) {
	var properties []*Property
	err := s.db.WithContext(ctx).Preload("Units").Order("id asc").Find(&properties).Error
	return properties, err
}

func (s *store) ListPropertiesWithPayments(ctx context.Context) ([]*Property, error) {
	var properties []*Property
	err := s.db.WithContext(ctx).
		Preload("Units.Leases.Payments").
		Order("id asc").
		Find(&properties).Error
	return properties, err
}

// ---- Units ----

func (s *store) CreateUnit(ctx context.Context, unit *Unit) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property Property
		if err := tx.First(&property, unit.PropertyID).Error; err != nil {
			return notFound(err, ErrPropertyNotFound)
		}
		var count int64
		if err := tx.Model(&Unit{}).Where("reference = ?", unit.Reference).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUnitReference
		}
		if unit.Status == "" {
			unit.Status = UnitAvailable
		}
		if unit.Status == UnitOccupied {
			return ErrUnitStatusManaged
		}
		return tx.Create(unit).Error
	})
}

func (s *store) GetUnitByID(ctx context.Context, id uint) (*Unit, error) {
	var unit Unit
	if err := s.db.WithContext(ctx).Preload("Property").First(&unit, id).Error; err != nil {
		return nil, notFound(err, ErrUnitNotFound)
	}
	return &unit, nil
}

func (s *store) GetUnitByReference(ctx context.Context, reference string) (*Unit, error) {
	var unit Unit
	if err := s.db.WithContext(ctx).Where("reference = ?", reference).First(&unit).Error; err != nil {
		return nil, notFound(err, ErrUnitNotFound)
	}
	return &unit, nil
}

func (s *store) UpdateUnit(ctx context.Context, unit *Unit) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Unit
		if err := tx.First(&current, unit.ID).Error; err != nil {
			return notFound(err, ErrUnitNotFound)
		}
		if unit.Reference != current.Reference {
			var count int64
			if err := tx.Model(&Unit{}).
				Where("reference = ? AND id <> ?", unit.Reference, unit.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateUnitReference
			}
		}
		if unit.Status != current.Status {
			// OCCUPIED is driven solely by lease create/terminate
			if unit.Status == UnitOccupied || current.Status == UnitOccupied {
				return ErrUnitStatusManaged
			}
			var active int64
			if err := tx.Model(&Lease{}).
				Where("unit_id = ? AND status = ?", unit.ID, LeaseActive).Count(&active).Error; err != nil {
				return err
			}
			if active > 0 {
				return ErrUnitUnderActiveLease
			}
		}
		return tx.Omit("Property", "Leases").Save(unit).Error
	})
}

func (s *store) DeleteUnit(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var leases int64
		if err := tx.Model(&Lease{}).Where("unit_id = ?", id).Count(&leases).Error; err != nil {
			return err
		}
		if leases > 0 {
			return ErrUnitHasLeases
		}
		res := tx.Delete(&Unit{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUnitNotFound
		}
		return nil
	})
}

func (s *store) ListUnits(ctx context.Context, propertyID uint) ([]*Unit, error) {
	var units []*Unit
	q := s.db.WithContext(ctx).Preload("Property").Order("id asc")
	if propertyID != 0 {
		q = q.Where("property_id = ?", propertyID)
	}
	err := q.Find(&units).Error
	return units, err
}

// ---- Tenants ----

func (s *store) CreateTenant(ctx context.Context, tenant *Tenant) error {
	return s.db.WithContext(ctx).Create(tenant).Error
}

func (s *store) GetTenantByID(ctx context.Context, id uint) (*Tenant, error) {
	var tenant Tenant
	if err := s.db.WithContext(ctx).First(&tenant, id).Error; err != nil {
		return nil, notFound(err, ErrTenantNotFound)
	}
	return &tenant, nil
}

func (s *store) UpdateTenant(ctx context.Context, tenant *Tenant) error {
	return s.db.WithContext(ctx).Save(tenant).Error
}

func (s *store) DeleteTenant(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var leases int64
		if err := tx.Model(&Lease{}).Where("tenant_id = ?", id).Count(&leases).Error; err != nil {
			return err
		}
		if leases > 0 {
			return ErrTenantHasLeases
		}
		res := tx.Delete(&Tenant{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTenantNotFound
		}
		return nil
	})
}

func (s *store) ListTenants(ctx context.Context) ([]*Tenant, error) {
	var tenants []*Tenant
	err := s.db.WithContext(ctx).Order("id asc").Find(&tenants).Error
	return tenants, err
}

// ---- Leases ----

// CreateLease inserts an ACTIVE lease and flips the unit to OCCUPIED in a
// single transaction. The unit flip is a conditional update whose affected-row
// count is checked, so two concurrent creates can never double-book a unit.
func (s *store) CreateLease(ctx context.Context, lease *Lease) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tenant Tenant
		if err := tx.First(&tenant, lease.TenantID).Error; err != nil {
			return notFound(err, ErrTenantNotFound)
		}
		var unit Unit
		if err := tx.First(&unit, lease.UnitID).Error; err != nil {
			return notFound(err, ErrUnitNotFound)
		}
		if unit.Status != UnitAvailable {
			return ErrUnitNotAvailable
		}
		var active int64
		if err := tx.Model(&Lease{}).
			Where("unit_id = ? AND status = ?", lease.UnitID, LeaseActive).Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrUnitAlreadyLeased
		}
		var dup int64
		if err := tx.Model(&Lease{}).Where("reference = ?", lease.Reference).Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrDuplicateLeaseReference
		}

		lease.Status = LeaseActive
		if err := tx.Create(lease).Error; err != nil {
			return err
		}

		res := tx.Model(&Unit{}).
			Where("id = ? AND status = ?", lease.UnitID, UnitAvailable).
			Update("status", UnitOccupied)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			// a concurrent create won the unit between our check and the flip
			return ErrUnitNotAvailable
		}
		return nil
	})
}

func (s *store) GetLeaseByID(ctx context.Context, id uint) (*Lease, error) {
	var lease Lease
	if err := s.db.WithContext(ctx).
		Preload("Tenant").
		Preload("Unit").
		First(&lease, id).Error; err != nil {
		return nil, notFound(err, ErrLeaseNotFound)
	}
	return &lease, nil
}

// UpdateLease persists generic lease changes. When the update moves the status
// from ACTIVE to TERMINATED, the unit is released in the same transaction —
// the side effect is identical no matter which code path terminates the lease.
func (s *store) UpdateLease(ctx context.Context, lease *Lease) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Lease
		if err := tx.First(&current, lease.ID).Error; err != nil {
			return notFound(err, ErrLeaseNotFound)
		}
		if current.Status == LeaseTerminated && lease.Status == LeaseActive {
			return ErrLeaseTerminated
		}
		if lease.Reference != current.Reference {
			var dup int64
			if err := tx.Model(&Lease{}).
				Where("reference = ? AND id <> ?", lease.Reference, lease.ID).Count(&dup).Error; err != nil {
				return err
			}
			if dup > 0 {
				return ErrDuplicateLeaseReference
			}
		}
		// tenant and unit bindings are immutable through this path
		lease.TenantID = current.TenantID
		lease.UnitID = current.UnitID

		terminating := current.Status == LeaseActive && lease.Status == LeaseTerminated
		if terminating && lease.EndDate == nil {
			now := time.Now()
			lease.EndDate = &now
		}
		if err := tx.Omit("Tenant", "Unit", "Payments").Save(lease).Error; err != nil {
			return err
		}
		if terminating {
			if err := tx.Model(&Unit{}).
				Where("id = ? AND status = ?", current.UnitID, UnitOccupied).
				Update("status", UnitAvailable).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// TerminateLease marks the lease TERMINATED, stamps the end date and releases
// the unit, all in one transaction. Terminating twice is a conflict.
func (s *store) TerminateLease(ctx context.Context, id uint, endDate time.Time) (*Lease, error) {
	var lease Lease
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lease, id).Error; err != nil {
			return notFound(err, ErrLeaseNotFound)
		}
		if lease.Status == LeaseTerminated {
			return ErrLeaseAlreadyTerminated
		}
		lease.Status = LeaseTerminated
		lease.EndDate = &endDate
		if err := tx.Omit("Tenant", "Unit", "Payments").Save(&lease).Error; err != nil {
			return err
		}
		return tx.Model(&Unit{}).
			Where("id = ? AND status = ?", lease.UnitID, UnitOccupied).
			Update("status", UnitAvailable).Error
	})
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

func (s *store) ListLeases(ctx context.Context, status LeaseStatus) ([]*Lease, error) {
	var leases []*Lease
	q := s.db.WithContext(ctx).
		Preload("Tenant").
		Preload("Unit").
		Order("id desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&leases).Error
	return leases, err
}

func (s *store) CountActiveLeasesByUnit(ctx context.Context, unitID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Lease{}).
		Where("unit_id = ? AND status = ?", unitID, LeaseActive).Count(&count).Error
	return count, err
}

func (s *store) ActiveLeaseCountByProperty(ctx context.Context) (map[uint]int64, error) {
	var rows []struct {
		PropertyID uint
		Count      int64
	}
	err := s.db.WithContext(ctx).Model(&Lease{}).
		Select("units.property_id as property_id, count(*) as count").
		Joins("JOIN units ON units.id = leases.unit_id").
		Where("leases.status = ?", LeaseActive).
		Group("units.property_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.PropertyID] = r.Count
	}
	return counts, nil
}

// ---- Payment modes ----

func (s *store) CreatePaymentMode(ctx context.Context, mode *PaymentMode) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&PaymentMode{}).Where("code = ?", mode.Code).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicatePaymentModeCode
	}
	return s.db.WithContext(ctx).Create(mode).Error
}

func (s *store) GetPaymentModeByID(ctx context.Context, id uint) (*PaymentMode, error) {
	var mode PaymentMode
	if err := s.db.WithContext(ctx).First(&mode, id).Error; err != nil {
		return nil, notFound(err, ErrPaymentModeNotFound)
	}
	return &mode, nil
}

func (s *store) UpdatePaymentMode(ctx context.Context, mode *PaymentMode) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&PaymentMode{}).
		Where("code = ? AND id <> ?", mode.Code, mode.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicatePaymentModeCode
	}
	return s.db.WithContext(ctx).Save(mode).Error
}

func (s *store) DeletePaymentMode(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payments int64
		if err := tx.Model(&Payment{}).Where("payment_mode_id = ?", id).Count(&payments).Error; err != nil {
			return err
		}
		if payments > 0 {
			return ErrPaymentModeInUse
		}
		res := tx.Delete(&PaymentMode{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPaymentModeNotFound
		}
		return nil
	})
}

func (s *store) ListPaymentModes(ctx context.Context) ([]*PaymentMode, error) {
	var modes []*PaymentMode
	err := s.db.WithContext(ctx).Order("id asc").Find(&modes).Error
	return modes, err
}

// ---- Payments ----

func (s *store) CreatePayment(ctx context.Context, payment *Payment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lease Lease
		if err := tx.First(&lease, payment.LeaseID).Error; err != nil {
			return notFound(err, ErrLeaseNotFound)
		}
		var mode PaymentMode
		if err := tx.First(&mode, payment.PaymentModeID).Error; err != nil {
			return notFound(err, ErrPaymentModeNotFound)
		}
		if payment.Status == "" {
			payment.Status = PaymentPending
		}
		return tx.Create(payment).Error
	})
}

func (s *store) GetPaymentByID(ctx context.Context, id uint) (*Payment, error) {
	var payment Payment
	if err := s.db.WithContext(ctx).
		Preload("Lease").
		Preload("PaymentMode").
		First(&payment, id).Error; err != nil {
		return nil, notFound(err, ErrPaymentNotFound)
	}
	return &payment, nil
}

func (s *store) UpdatePayment(ctx context.Context, payment *Payment) error {
	return s.db.WithContext(ctx).Omit("Lease", "PaymentMode").Save(payment).Error
}

func (s *store) DeletePayment(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (s *store) ListPayments(ctx context.Context, leaseID uint) ([]*Payment, error) {
	var payments []*Payment
	q := s.db.WithContext(ctx).
		Preload("PaymentMode").
		Preload("Lease").
		Order("paid_at desc")
	if leaseID != 0 {
		q = q.Where("lease_id = ?", leaseID)
	}
	err := q.Find(&payments).Error
	return payments, err
}

func (s *store) ListPaymentsBetween(ctx context.Context, start, end time.Time, status PaymentStatus) ([]*Payment, error) {
	var payments []*Payment
	err := s.db.WithContext(ctx).
		Preload("PaymentMode").
		Where("status = ? AND paid_at >= ? AND paid_at < ?", status, start, end).
		Order("paid_at asc").
		Find(&payments).Error
	return payments, err
}

func (s *store) CountOverduePayments(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Payment{}).
		Where("status = ? AND paid_at < ?", PaymentPending, now).Count(&count).Error
	return count, err
}

// ---- Documents ----

func (s *store) CreateDocument(ctx context.Context, doc *Document) error {
	return s.db.WithContext(ctx).Create(doc).Error
}

func (s *store) GetDocumentByID(ctx context.Context, id uint) (*Document, error) {
	var doc Document
	if err := s.db.WithContext(ctx).Preload("Uploader").First(&doc, id).Error; err != nil {
		return nil, notFound(err, ErrDocumentNotFound)
	}
	return &doc, nil
}

func (s *store) DeleteDocument(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&Document{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (s *store) ListDocumentsByOwner(ctx context.Context, ownerType string, ownerID uint) ([]*Document, error) {
	var docs []*Document
	err := s.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("id desc").
		Find(&docs).Error
	return docs, err
}

// ---- Audit log ----

func (s *store) CreateAuditLog(ctx context.Context, entry *AuditLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *store) ListAuditLogs(ctx context.Context, limit, offset int) ([]*AuditLog, error) {
	var entries []*AuditLog
	err := s.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc, id desc").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

// ---- Dashboard counters ----

func (s *store) CountProperties(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Property{}).Count(&count).Error
	return count, err
}

func (s *store) CountUnits(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Unit{}).Count(&count).Error
	return count, err
}

func (s *store) CountUnitsByStatus(ctx context.Context, status UnitStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Unit{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (s *store) CountTenants(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Tenant{}).Count(&count).Error
	return count, err
}

func (s *store) CountLeasesByStatus(ctx context.Context, status LeaseStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Lease{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (s *store) CountPayments(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Payment{}).Count(&count).Error
	return count, err
}
