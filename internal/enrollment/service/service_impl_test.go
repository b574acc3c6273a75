package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/opencampus/opencampus/internal/clock"
	coursedomain "github.com/opencampus/opencampus/internal/course/domain"
	courserepo "github.com/opencampus/opencampus/internal/course/repository"
	courseservice "github.com/opencampus/opencampus/internal/course/service"
	"github.com/opencampus/opencampus/internal/enrollment/domain"
	"github.com/opencampus/opencampus/internal/enrollment/repository"
	"github.com/opencampus/opencampus/internal/gateway"
	"github.com/opencampus/opencampus/internal/locking"
	paymentdomain "github.com/opencampus/opencampus/internal/payment/domain"
	paymentrepo "github.com/opencampus/opencampus/internal/payment/repository"
)

type gatewayStub struct {
	mu     sync.Mutex
	orders int
	err    error
}

func (g *gatewayStub) CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (gateway.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return gateway.Order{}, g.err
	}
	g.orders++
	return gateway.Order{
		ID:       fmt.Sprintf("order_%03d", g.orders),
		Amount:   req.Amount,
		Currency: req.Currency,
	}, nil
}

func (g *gatewayStub) KeyID() string { return "rzp_test_fixture" }

func (g *gatewayStub) Orders() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.orders
}

type fixture struct {
	svc      domain.Service
	db       *gorm.DB
	node     *snowflake.Node
	clock    *clock.FakeClock
	gateway  *gatewayStub
	verifier *gateway.SignatureVerifier
	repo     domain.Repository
	payments paymentdomain.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&coursedomain.Course{},
		&coursedomain.CourseVideo{},
		&paymentdomain.PaymentRecord{},
		&domain.Enrollment{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	stub := &gatewayStub{}
	verifier := gateway.NewSignatureVerifier("test_secret", "test_webhook_secret")
	repo := repository.Provide()
	payments := paymentrepo.Provide()

	courseSvc := courseservice.New(courseservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  courserepo.Provide(),
	})

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       fake,
		Locker:      locking.NewKeyedMutex(),
		Repo:        repo,
		PaymentRepo: payments,
		CourseSvc:   courseSvc,
		Gateway:     stub,
		Verifier:    verifier,
	})

	return &fixture{
		svc:      svc,
		db:       db,
		node:     node,
		clock:    fake,
		gateway:  stub,
		verifier: verifier,
		repo:     repo,
		payments: payments,
	}
}

func (f *fixture) createCourse(t *testing.T, price, discount int64, free bool) coursedomain.Course {
	t.Helper()
	course := coursedomain.Course{
		ID:            f.node.Generate(),
		Title:         "Distributed Systems",
		InstructorID:  f.node.Generate(),
		Price:         price,
		DiscountPrice: discount,
		IsFree:        free,
		Currency:      "INR",
		CreatedAt:     f.clock.Now(),
		UpdatedAt:     f.clock.Now(),
	}
	require.NoError(t, f.db.Create(&course).Error)
	return course
}

func (f *fixture) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func TestInitiateFreeCourseEnrollsImmediately(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, true)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{
		StudentID: student,
		CourseID:  course.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Enrolled)
	assert.Nil(t, res.PaymentRequired)
	assert.Equal(t, domain.StatusEnrolled, res.Enrolled.Status)
	assert.Nil(t, res.Enrolled.PaymentID)
	require.NotNil(t, res.Enrolled.EnrolledAt)

	assert.Equal(t, 0, f.gateway.Orders())
	assert.EqualValues(t, 0, f.countRows(t, &paymentdomain.PaymentRecord{}))
}

func TestInitiatePaidCourseReturnsPaymentIntent(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 29900, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{
		StudentID: student,
		CourseID:  course.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, res.Enrolled)
	require.NotNil(t, res.PaymentRequired)
	assert.EqualValues(t, 29900, res.PaymentRequired.Amount)
	assert.Equal(t, "INR", res.PaymentRequired.Currency)
	assert.Equal(t, "rzp_test_fixture", res.PaymentRequired.GatewayKey)

	record, err := f.payments.FindByOrderID(context.Background(), f.db, res.PaymentRequired.OrderID)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, paymentdomain.StatusCreated, record.Status)
	assert.EqualValues(t, 29900, record.Amount)
	assert.Empty(t, record.PaymentID)

	enrollment, err := f.repo.FindByPair(context.Background(), f.db, student, course.ID)
	require.NoError(t, err)
	require.NotNil(t, enrollment)
	assert.Equal(t, domain.StatusPending, enrollment.Status)
	require.NotNil(t, enrollment.PaymentID)
	assert.Equal(t, record.ID, *enrollment.PaymentID)
}

func TestInitiateUsesListPriceWithoutDiscount(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{
		StudentID: student,
		CourseID:  course.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.PaymentRequired)
	assert.EqualValues(t, 49900, res.PaymentRequired.Amount)
}

func TestInitiateUnknownCourse(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{
		StudentID: f.node.Generate(),
		CourseID:  f.node.Generate(),
	})
	assert.ErrorIs(t, err, coursedomain.ErrNotFound)
}

func TestInitiateWhenAlreadyEnrolled(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 0, 0, true)
	student := f.node.Generate()

	_, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)

	_, err = f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)
	assert.EqualValues(t, 1, f.countRows(t, &domain.Enrollment{}))
}

func TestInitiateGatewayDownWritesNothing(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()
	f.gateway.err = gateway.ErrUnavailable

	_, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	assert.ErrorIs(t, err, gateway.ErrUnavailable)

	assert.EqualValues(t, 0, f.countRows(t, &paymentdomain.PaymentRecord{}))
	assert.EqualValues(t, 0, f.countRows(t, &domain.Enrollment{}))
}

func TestConfirmHappyPath(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)
	orderID := res.PaymentRequired.OrderID

	err = f.svc.Confirm(context.Background(), domain.ConfirmRequest{
		OrderID:   orderID,
		PaymentID: "pay_abc123",
		Signature: f.verifier.Sign(orderID, "pay_abc123"),
		StudentID: student,
		CourseID:  course.ID,
	})
	require.NoError(t, err)

	record, err := f.payments.FindByOrderID(context.Background(), f.db, orderID)
	require.NoError(t, err)
	assert.Equal(t, paymentdomain.StatusSuccess, record.Status)
	assert.Equal(t, "pay_abc123", record.PaymentID)

	enrollment, err := f.repo.FindByPair(context.Background(), f.db, student, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEnrolled, enrollment.Status)
	require.NotNil(t, enrollment.EnrolledAt)
}

func TestConfirmIsIdempotent(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)
	orderID := res.PaymentRequired.OrderID

	req := domain.ConfirmRequest{
		OrderID:   orderID,
		PaymentID: "pay_abc123",
		Signature: f.verifier.Sign(orderID, "pay_abc123"),
		StudentID: student,
		CourseID:  course.ID,
	}
	require.NoError(t, f.svc.Confirm(context.Background(), req))

	first, err := f.repo.FindByPair(context.Background(), f.db, student, course.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Confirm(context.Background(), req))

	second, err := f.repo.FindByPair(context.Background(), f.db, student, course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.StatusEnrolled, second.Status)
	assert.EqualValues(t, 1, f.countRows(t, &domain.Enrollment{}))
}

func TestConfirmTamperedSignature(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)
	orderID := res.PaymentRequired.OrderID

	err = f.svc.Confirm(context.Background(), domain.ConfirmRequest{
		OrderID:   orderID,
		PaymentID: "pay_abc123",
		Signature: "deadbeef",
		StudentID: student,
		CourseID:  course.ID,
	})
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)

	record, err := f.payments.FindByOrderID(context.Background(), f.db, orderID)
	require.NoError(t, err)
	assert.Equal(t, paymentdomain.StatusFailed, record.Status)
	assert.Empty(t, record.PaymentID)

	enrollment, err := f.repo.FindByPair(context.Background(), f.db, student, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, enrollment.Status)
}

func TestConfirmSignatureForDifferentOrderRejected(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)
	orderID := res.PaymentRequired.OrderID

	err = f.svc.Confirm(context.Background(), domain.ConfirmRequest{
		OrderID:   orderID,
		PaymentID: "pay_abc123",
		Signature: f.verifier.Sign("order_other", "pay_abc123"),
		StudentID: student,
		CourseID:  course.ID,
	})
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestConfirmUnknownOrder(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	err := f.svc.Confirm(context.Background(), domain.ConfirmRequest{
		OrderID:   "order_unknown",
		PaymentID: "pay_abc123",
		Signature: f.verifier.Sign("order_unknown", "pay_abc123"),
		StudentID: student,
		CourseID:  course.ID,
	})
	assert.ErrorIs(t, err, paymentdomain.ErrNotFound)
}

func TestConfirmMissingFields(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Confirm(context.Background(), domain.ConfirmRequest{
		OrderID:   "order_001",
		PaymentID: "",
		Signature: "sig",
		StudentID: f.node.Generate(),
		CourseID:  f.node.Generate(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAbandonCancelsPendingEnrollment(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)
	orderID := res.PaymentRequired.OrderID

	err = f.svc.Abandon(context.Background(), domain.AbandonRequest{
		OrderID:   orderID,
		StudentID: student,
		CourseID:  course.ID,
	})
	require.NoError(t, err)

	record, err := f.payments.FindByOrderID(context.Background(), f.db, orderID)
	require.NoError(t, err)
	assert.Equal(t, paymentdomain.StatusFailed, record.Status)

	enrollment, err := f.repo.FindByPair(context.Background(), f.db, student, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, enrollment.Status)
}

func TestAbandonIsIdempotent(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)

	req := domain.AbandonRequest{OrderID: res.PaymentRequired.OrderID, StudentID: student, CourseID: course.ID}
	require.NoError(t, f.svc.Abandon(context.Background(), req))
	require.NoError(t, f.svc.Abandon(context.Background(), req))

	enrollment, err := f.repo.FindByPair(context.Background(), f.db, student, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, enrollment.Status)
}

func TestAbandonAfterConfirmKeepsEnrollment(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)
	orderID := res.PaymentRequired.OrderID

	require.NoError(t, f.svc.Confirm(context.Background(), domain.ConfirmRequest{
		OrderID:   orderID,
		PaymentID: "pay_abc123",
		Signature: f.verifier.Sign(orderID, "pay_abc123"),
		StudentID: student,
		CourseID:  course.ID,
	}))

	// A late abandon for the same order must not revoke paid access.
	require.NoError(t, f.svc.Abandon(context.Background(), domain.AbandonRequest{
		OrderID:   orderID,
		StudentID: student,
		CourseID:  course.ID,
	}))

	enrollment, err := f.repo.FindByPair(context.Background(), f.db, student, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEnrolled, enrollment.Status)
}

func TestAbandonUnknownOrder(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Abandon(context.Background(), domain.AbandonRequest{
		OrderID:   "order_unknown",
		StudentID: f.node.Generate(),
		CourseID:  f.node.Generate(),
	})
	assert.ErrorIs(t, err, paymentdomain.ErrNotFound)
}

func TestRetryAfterAbandonReusesEnrollmentRow(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)
	require.NoError(t, f.svc.Abandon(context.Background(), domain.AbandonRequest{
		OrderID:   res.PaymentRequired.OrderID,
		StudentID: student,
		CourseID:  course.ID,
	}))

	cancelled, err := f.repo.FindByPairAndStatus(context.Background(), f.db, student, course.ID, domain.StatusCancelled)
	require.NoError(t, err)
	require.NotNil(t, cancelled)

	retry, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)
	require.NotNil(t, retry.PaymentRequired)
	assert.NotEqual(t, res.PaymentRequired.OrderID, retry.PaymentRequired.OrderID)

	reused, err := f.repo.FindByPair(context.Background(), f.db, student, course.ID)
	require.NoError(t, err)
	assert.Equal(t, cancelled.ID, reused.ID)
	assert.Equal(t, domain.StatusPending, reused.Status)
	assert.EqualValues(t, 1, f.countRows(t, &domain.Enrollment{}))
	assert.EqualValues(t, 2, f.countRows(t, &paymentdomain.PaymentRecord{}))

	orderID := retry.PaymentRequired.OrderID
	require.NoError(t, f.svc.Confirm(context.Background(), domain.ConfirmRequest{
		OrderID:   orderID,
		PaymentID: "pay_retry",
		Signature: f.verifier.Sign(orderID, "pay_retry"),
		StudentID: student,
		CourseID:  course.ID,
	}))

	final, err := f.repo.FindByPair(context.Background(), f.db, student, course.ID)
	require.NoError(t, err)
	assert.Equal(t, cancelled.ID, final.ID)
	assert.Equal(t, domain.StatusEnrolled, final.Status)
}

func TestFreeEnrollAfterAbandonedPaidAttempt(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)
	require.NoError(t, f.svc.Abandon(context.Background(), domain.AbandonRequest{
		OrderID:   res.PaymentRequired.OrderID,
		StudentID: student,
		CourseID:  course.ID,
	}))

	// Course goes free before the retry; the cancelled row flips straight
	// to enrolled without a new payment record.
	require.NoError(t, f.db.Model(&coursedomain.Course{}).
		Where("id = ?", course.ID).
		Update("is_free", true).Error)

	retry, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)
	require.NotNil(t, retry.Enrolled)
	assert.Equal(t, domain.StatusEnrolled, retry.Enrolled.Status)
	assert.Nil(t, retry.Enrolled.PaymentID)
	assert.EqualValues(t, 1, f.countRows(t, &domain.Enrollment{}))
	assert.EqualValues(t, 1, f.countRows(t, &paymentdomain.PaymentRecord{}))
}

func TestReconcileCapturedWebhookEnrolls(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)
	orderID := res.PaymentRequired.OrderID

	require.NoError(t, f.svc.Reconcile(context.Background(), domain.WebhookEvent{
		OrderID:   orderID,
		PaymentID: "pay_webhook",
		Captured:  true,
	}))

	record, err := f.payments.FindByOrderID(context.Background(), f.db, orderID)
	require.NoError(t, err)
	assert.Equal(t, paymentdomain.StatusSuccess, record.Status)
	assert.Equal(t, "pay_webhook", record.PaymentID)

	enrollment, err := f.repo.FindByPair(context.Background(), f.db, student, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEnrolled, enrollment.Status)
}

func TestReconcileFailedWebhookCancels(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)
	orderID := res.PaymentRequired.OrderID

	require.NoError(t, f.svc.Reconcile(context.Background(), domain.WebhookEvent{
		OrderID:  orderID,
		Captured: false,
	}))

	record, err := f.payments.FindByOrderID(context.Background(), f.db, orderID)
	require.NoError(t, err)
	assert.Equal(t, paymentdomain.StatusFailed, record.Status)

	enrollment, err := f.repo.FindByPair(context.Background(), f.db, student, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, enrollment.Status)
}

func TestReconcileUnknownOrder(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Reconcile(context.Background(), domain.WebhookEvent{
		OrderID:   "order_unknown",
		PaymentID: "pay_x",
		Captured:  true,
	})
	assert.ErrorIs(t, err, paymentdomain.ErrNotFound)
}

func TestListMineReturnsEnrollments(t *testing.T) {
	f := newFixture(t)
	free := f.createCourse(t, 0, 0, true)
	paid := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	_, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: free.ID})
	require.NoError(t, err)
	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: paid.ID})
	require.NoError(t, err)
	orderID := res.PaymentRequired.OrderID
	require.NoError(t, f.svc.Confirm(context.Background(), domain.ConfirmRequest{
		OrderID:   orderID,
		PaymentID: "pay_abc",
		Signature: f.verifier.Sign(orderID, "pay_abc"),
		StudentID: student,
		CourseID:  paid.ID,
	}))

	list, err := f.svc.ListMine(context.Background(), student)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, e := range list {
		assert.Equal(t, domain.StatusEnrolled, e.Status)
		require.NotNil(t, e.Course)
	}
}

func TestConcurrentConfirmAndAbandonConverge(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, 49900, 0, false)
	student := f.node.Generate()

	res, err := f.svc.Initiate(context.Background(), domain.InitiateRequest{StudentID: student, CourseID: course.ID})
	require.NoError(t, err)
	orderID := res.PaymentRequired.OrderID

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = f.svc.Confirm(context.Background(), domain.ConfirmRequest{
			OrderID:   orderID,
			PaymentID: "pay_race",
			Signature: f.verifier.Sign(orderID, "pay_race"),
			StudentID: student,
			CourseID:  course.ID,
		})
	}()
	go func() {
		defer wg.Done()
		_ = f.svc.Abandon(context.Background(), domain.AbandonRequest{
			OrderID:   orderID,
			StudentID: student,
			CourseID:  course.ID,
		})
	}()
	wg.Wait()

	enrollment, err := f.repo.FindByPair(context.Background(), f.db, student, course.ID)
	require.NoError(t, err)
	// The pair lock serializes the two writers. Whichever order they ran
	// in, the verified payment wins: abandon-then-confirm re-enrolls, and
	// confirm-then-abandon no-ops the conditional cancel.
	assert.Equal(t, domain.StatusEnrolled, enrollment.Status)
	assert.NotNil(t, enrollment.EnrolledAt)
}
