package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/opencampus/opencampus/internal/clock"
	"github.com/opencampus/opencampus/internal/config"
	coursedomain "github.com/opencampus/opencampus/internal/course/domain"
	"github.com/opencampus/opencampus/internal/enrollment/domain"
	"github.com/opencampus/opencampus/internal/gateway"
	"github.com/opencampus/opencampus/internal/locking"
	obsmetrics "github.com/opencampus/opencampus/internal/observability/metrics"
	paymentdomain "github.com/opencampus/opencampus/internal/payment/domain"
)

type Params struct {
	fx.In

	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Locker      locking.Locker
	Repo        domain.Repository
	PaymentRepo paymentdomain.Repository
	CourseSvc   coursedomain.Service
	Gateway     gateway.Client
	Verifier    *gateway.SignatureVerifier
	Metrics     *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	currency    string
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	locker      locking.Locker
	repo        domain.Repository
	paymentRepo paymentdomain.Repository
	courseSvc   coursedomain.Service
	gateway     gateway.Client
	verifier    *gateway.SignatureVerifier
	metrics     *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	currency := p.Cfg.GatewayCurrency
	if currency == "" {
		currency = "INR"
	}
	return &Service{
		currency:    currency,
		db:          p.DB,
		log:         p.Log.Named("enrollment.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		locker:      p.Locker,
		repo:        p.Repo,
		paymentRepo: p.PaymentRepo,
		courseSvc:   p.CourseSvc,
		gateway:     p.Gateway,
		verifier:    p.Verifier,
		metrics:     p.Metrics,
	}
}

func pairKey(studentID, courseID snowflake.ID) string {
	return "enroll:" + studentID.String() + ":" + courseID.String()
}

// Initiate decides whether enrollment proceeds immediately (free course),
// must wait on payment (paid course), or is rejected.
func (s *Service) Initiate(ctx context.Context, req domain.InitiateRequest) (domain.InitiateResult, error) {
	if req.StudentID == 0 || req.CourseID == 0 {
		return domain.InitiateResult{}, domain.ErrInvalidInput
	}

	release, err := s.locker.Acquire(ctx, pairKey(req.StudentID, req.CourseID))
	if err != nil {
		return domain.InitiateResult{}, err
	}
	defer release()

	course, err := s.courseSvc.GetByID(ctx, req.CourseID)
	if err != nil {
		return domain.InitiateResult{}, err
	}

	existing, err := s.repo.FindByPair(ctx, s.db, req.StudentID, req.CourseID)
	if err != nil {
		return domain.InitiateResult{}, err
	}
	if existing != nil && existing.Status == domain.StatusEnrolled {
		return domain.InitiateResult{}, domain.ErrAlreadyEnrolled
	}

	if course.EffectiveCharge() == 0 {
		return s.enrollFree(ctx, req, existing)
	}
	return s.beginPaidCheckout(ctx, req, course, existing)
}

// enrollFree grants access immediately. No gateway call, no payment record.
func (s *Service) enrollFree(ctx context.Context, req domain.InitiateRequest, existing *domain.Enrollment) (domain.InitiateResult, error) {
	now := s.clock.Now()

	enrollment := existing
	if enrollment == nil {
		enrollment = &domain.Enrollment{
			ID:        s.genID.Generate(),
			StudentID: req.StudentID,
			CourseID:  req.CourseID,
			Status:    domain.StatusEnrolled,
			CreatedAt: now,
		}
		enrollment.EnrolledAt = &now
		enrollment.UpdatedAt = now
		if err := s.repo.Insert(ctx, s.db, enrollment); err != nil {
			return domain.InitiateResult{}, err
		}
	} else {
		// The unique (student, course) index forbids a second row, so a
		// prior cancelled attempt is rewritten in place.
		enrollment.Status = domain.StatusEnrolled
		enrollment.PaymentID = nil
		enrollment.EnrolledAt = &now
		enrollment.UpdatedAt = now
		if err := s.repo.Save(ctx, s.db, enrollment); err != nil {
			return domain.InitiateResult{}, err
		}
	}

	s.metrics.RecordEnrollment("enrolled_free")
	s.log.Info("enrolled in free course",
		zap.String("student_id", req.StudentID.String()),
		zap.String("course_id", req.CourseID.String()),
	)
	return domain.InitiateResult{Enrolled: enrollment}, nil
}

// beginPaidCheckout creates the gateway order, then the payment record, then
// moves the enrollment to pending. Order creation goes first: a gateway
// failure must not leave a half-written payment record behind.
func (s *Service) beginPaidCheckout(ctx context.Context, req domain.InitiateRequest, course coursedomain.Course, existing *domain.Enrollment) (domain.InitiateResult, error) {
	charge := course.EffectiveCharge()
	currency := course.Currency
	if currency == "" {
		currency = s.currency
	}

	order, err := s.gateway.CreateOrder(ctx, gateway.CreateOrderRequest{
		Amount:   charge,
		Currency: currency,
	})
	if err != nil {
		s.metrics.RecordGatewayOrder("error")
		return domain.InitiateResult{}, err
	}
	s.metrics.RecordGatewayOrder("created")

	now := s.clock.Now()
	record := paymentdomain.PaymentRecord{
		ID:        s.genID.Generate(),
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		OrderID:   order.ID,
		Amount:    charge,
		Currency:  currency,
		Status:    paymentdomain.StatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.paymentRepo.Insert(ctx, s.db, &record); err != nil {
		return domain.InitiateResult{}, err
	}
	s.metrics.RecordPayment(paymentdomain.StatusCreated)

	if existing != nil {
		existing.Status = domain.StatusPending
		existing.PaymentID = &record.ID
		existing.UpdatedAt = now
		if err := s.repo.Save(ctx, s.db, existing); err != nil {
			return domain.InitiateResult{}, err
		}
	} else {
		enrollment := &domain.Enrollment{
			ID:        s.genID.Generate(),
			StudentID: req.StudentID,
			CourseID:  req.CourseID,
			PaymentID: &record.ID,
			Status:    domain.StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Insert(ctx, s.db, enrollment); err != nil {
			return domain.InitiateResult{}, err
		}
	}

	s.metrics.RecordEnrollment("pending")
	s.log.Info("paid checkout started",
		zap.String("student_id", req.StudentID.String()),
		zap.String("course_id", req.CourseID.String()),
		zap.String("order_id", order.ID),
		zap.Int64("amount", charge),
	)
	return domain.InitiateResult{
		PaymentRequired: &domain.PaymentIntent{
			OrderID:    order.ID,
			Amount:     charge,
			Currency:   currency,
			GatewayKey: s.gateway.KeyID(),
		},
	}, nil
}

// Confirm settles a checkout callback. The signature is recomputed locally
// from the shared secret; the gateway is never called.
func (s *Service) Confirm(ctx context.Context, req domain.ConfirmRequest) error {
	if strings.TrimSpace(req.OrderID) == "" ||
		strings.TrimSpace(req.PaymentID) == "" ||
		strings.TrimSpace(req.Signature) == "" ||
		req.StudentID == 0 || req.CourseID == 0 {
		return domain.ErrInvalidInput
	}

	release, err := s.locker.Acquire(ctx, pairKey(req.StudentID, req.CourseID))
	if err != nil {
		return err
	}
	defer release()

	record, err := s.paymentRepo.Find(ctx, s.db, req.OrderID, req.StudentID, req.CourseID)
	if err != nil {
		return err
	}
	if record == nil {
		return paymentdomain.ErrNotFound
	}

	if !s.verifier.Verify(req.OrderID, req.PaymentID, req.Signature) {
		// A failed verification is never silently dropped: the payment
		// record is marked failed before the error surfaces. The
		// enrollment is left untouched.
		record.Status = paymentdomain.StatusFailed
		record.UpdatedAt = s.clock.Now()
		if err := s.paymentRepo.Save(ctx, s.db, record); err != nil {
			return err
		}
		s.metrics.RecordPayment(paymentdomain.StatusFailed)
		s.log.Warn("payment signature mismatch",
			zap.String("order_id", req.OrderID),
			zap.String("student_id", req.StudentID.String()),
		)
		return domain.ErrVerificationFailed
	}

	if err := s.settle(ctx, record, req.PaymentID, req.StudentID, req.CourseID); err != nil {
		return err
	}

	s.log.Info("payment confirmed",
		zap.String("order_id", req.OrderID),
		zap.String("student_id", req.StudentID.String()),
		zap.String("course_id", req.CourseID.String()),
	)
	return nil
}

// settle applies the success transition to both rows in one transaction so
// the payment record and the enrollment never diverge.
func (s *Service) settle(ctx context.Context, record *paymentdomain.PaymentRecord, gatewayPaymentID string, studentID, courseID snowflake.ID) error {
	now := s.clock.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record.PaymentID = gatewayPaymentID
		record.Status = paymentdomain.StatusSuccess
		record.UpdatedAt = now
		if err := s.paymentRepo.Save(ctx, tx, record); err != nil {
			return err
		}

		enrollment, err := s.repo.FindByPair(ctx, tx, studentID, courseID)
		if err != nil {
			return err
		}
		if enrollment == nil {
			enrollment = &domain.Enrollment{
				ID:        s.genID.Generate(),
				StudentID: studentID,
				CourseID:  courseID,
				PaymentID: &record.ID,
				Status:    domain.StatusEnrolled,
				CreatedAt: now,
			}
			enrollment.EnrolledAt = &now
			enrollment.UpdatedAt = now
			return s.repo.Insert(ctx, tx, enrollment)
		}

		if enrollment.Status != domain.StatusEnrolled {
			enrollment.EnrolledAt = &now
		}
		enrollment.Status = domain.StatusEnrolled
		enrollment.PaymentID = &record.ID
		enrollment.UpdatedAt = now
		return s.repo.Save(ctx, tx, enrollment)
	})
	if err != nil {
		return err
	}

	s.metrics.RecordPayment(paymentdomain.StatusSuccess)
	s.metrics.RecordEnrollment("enrolled_paid")
	return nil
}

// Abandon covers both a gateway-reported failure and a dismissed checkout
// UI; the two are modeled identically. Safe to call repeatedly and after a
// successful confirm for the same order.
func (s *Service) Abandon(ctx context.Context, req domain.AbandonRequest) error {
	if strings.TrimSpace(req.OrderID) == "" || req.StudentID == 0 || req.CourseID == 0 {
		return domain.ErrInvalidInput
	}

	release, err := s.locker.Acquire(ctx, pairKey(req.StudentID, req.CourseID))
	if err != nil {
		return err
	}
	defer release()

	record, err := s.paymentRepo.Find(ctx, s.db, req.OrderID, req.StudentID, req.CourseID)
	if err != nil {
		return err
	}
	if record == nil {
		return paymentdomain.ErrNotFound
	}

	record.Status = paymentdomain.StatusFailed
	record.UpdatedAt = s.clock.Now()
	if err := s.paymentRepo.Save(ctx, s.db, record); err != nil {
		return err
	}
	s.metrics.RecordPayment(paymentdomain.StatusFailed)

	// Conditional update: only a pending enrollment is cancelled, so an
	// abandon racing in after a successful confirm cannot regress the row.
	cancelled, err := s.repo.CancelIfPending(ctx, s.db, req.StudentID, req.CourseID)
	if err != nil {
		return err
	}
	if cancelled {
		s.metrics.RecordEnrollment("cancelled")
	}

	s.log.Info("checkout abandoned",
		zap.String("order_id", req.OrderID),
		zap.String("student_id", req.StudentID.String()),
		zap.Bool("enrollment_cancelled", cancelled),
	)
	return nil
}

// Reconcile applies a gateway webhook that was already authenticated at the
// transport layer (raw-body HMAC). Webhooks carry no student context, so the
// payment record is located by order id alone.
func (s *Service) Reconcile(ctx context.Context, event domain.WebhookEvent) error {
	if strings.TrimSpace(event.OrderID) == "" {
		return domain.ErrInvalidInput
	}

	record, err := s.paymentRepo.FindByOrderID(ctx, s.db, event.OrderID)
	if err != nil {
		return err
	}
	if record == nil {
		return paymentdomain.ErrNotFound
	}

	release, err := s.locker.Acquire(ctx, pairKey(record.StudentID, record.CourseID))
	if err != nil {
		return err
	}
	defer release()

	if event.Captured {
		if strings.TrimSpace(event.PaymentID) == "" {
			return domain.ErrInvalidInput
		}
		if err := s.settle(ctx, record, event.PaymentID, record.StudentID, record.CourseID); err != nil {
			return err
		}
		s.log.Info("webhook reconciled as captured", zap.String("order_id", event.OrderID))
		return nil
	}

	record.Status = paymentdomain.StatusFailed
	record.UpdatedAt = s.clock.Now()
	if err := s.paymentRepo.Save(ctx, s.db, record); err != nil {
		return err
	}
	s.metrics.RecordPayment(paymentdomain.StatusFailed)

	if _, err := s.repo.CancelIfPending(ctx, s.db, record.StudentID, record.CourseID); err != nil {
		return err
	}
	s.log.Info("webhook reconciled as failed", zap.String("order_id", event.OrderID))
	return nil
}

func (s *Service) ListMine(ctx context.Context, studentID snowflake.ID) ([]domain.Enrollment, error) {
	if studentID == 0 {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.ListByStudent(ctx, s.db, studentID)
}
