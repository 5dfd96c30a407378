package checkout

import (
	"context"
	"testing"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/repository/contract"
	"course-platform-be/internal/repository/specification"
	"course-platform-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakePurchaseRepo struct {
	statuses map[uuid.UUID]entity.PurchaseStatus
}

func (f *fakePurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error { return nil }
func (f *fakePurchaseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Purchase, error) {
	return nil, nil
}
func (f *fakePurchaseRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Purchase, error) {
	return nil, nil
}
func (f *fakePurchaseRepo) FindAllDetailed(ctx context.Context, specs ...specification.Specification) ([]*entity.Purchase, error) {
	return nil, nil
}
func (f *fakePurchaseRepo) DeletePending(ctx context.Context, userId, courseId uuid.UUID) error {
	return nil
}
func (f *fakePurchaseRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PurchaseStatus) error {
	f.statuses[id] = status
	return nil
}

// fakeEnrollmentRepo mirrors the unique (user_id, course_id) index. Rows in
// unseen model a concurrent transaction that committed after the caller's
// existence read; Create collides with them the way the index would.
type fakeEnrollmentRepo struct {
	rows   []*entity.Enrollment
	unseen []*entity.Enrollment
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, e *entity.Enrollment) error {
	for i, u := range f.unseen {
		if u.UserId == e.UserId && u.CourseId == e.CourseId {
			f.rows = append(f.rows, u)
			f.unseen = append(f.unseen[:i], f.unseen[i+1:]...)
			return nil
		}
	}
	for _, r := range f.rows {
		if r.UserId == e.UserId && r.CourseId == e.CourseId {
			return nil
		}
	}
	f.rows = append(f.rows, e)
	return nil
}
func (f *fakeEnrollmentRepo) FindByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) (*entity.Enrollment, error) {
	for _, e := range f.rows {
		if e.UserId == userId && e.CourseId == courseId {
			return e, nil
		}
	}
	return nil, nil
}
func (f *fakeEnrollmentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Enrollment, error) {
	return f.rows, nil
}
func (f *fakeEnrollmentRepo) DeleteByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) error {
	kept := f.rows[:0]
	for _, e := range f.rows {
		if e.UserId != userId || e.CourseId != courseId {
			kept = append(kept, e)
		}
	}
	f.rows = kept
	return nil
}

type fakeReceiptRepo struct {
	rows   []*entity.Receipt
	unseen []*entity.Receipt
}

func (f *fakeReceiptRepo) Create(ctx context.Context, r *entity.Receipt) (bool, error) {
	for i, u := range f.unseen {
		if u.PurchaseId == r.PurchaseId {
			f.rows = append(f.rows, u)
			f.unseen = append(f.unseen[:i], f.unseen[i+1:]...)
			return false, nil
		}
	}
	for _, existing := range f.rows {
		if existing.PurchaseId == r.PurchaseId {
			return false, nil
		}
	}
	f.rows = append(f.rows, r)
	return true, nil
}
func (f *fakeReceiptRepo) FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.Receipt, error) {
	for _, r := range f.rows {
		if r.PurchaseId == purchaseId {
			return r, nil
		}
	}
	return nil, nil
}

type fakeCouponRepo struct {
	usages       []*entity.CouponUsage
	unseenUsages []*entity.CouponUsage
	usageCount   map[uuid.UUID]int
}

func (f *fakeCouponRepo) Create(ctx context.Context, c *entity.Coupon) error { return nil }
func (f *fakeCouponRepo) Update(ctx context.Context, c *entity.Coupon) error { return nil }
func (f *fakeCouponRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Coupon, error) {
	return nil, nil
}
func (f *fakeCouponRepo) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	return nil, nil
}
func (f *fakeCouponRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Coupon, error) {
	return nil, nil
}
func (f *fakeCouponRepo) ReplaceCourses(ctx context.Context, couponId uuid.UUID, courseIds []uuid.UUID) error {
	return nil
}
func (f *fakeCouponRepo) CountUsagesByUser(ctx context.Context, couponId, userId uuid.UUID) (int64, error) {
	var n int64
	for _, u := range f.usages {
		if u.CouponId == couponId && u.UserId == userId {
			n++
		}
	}
	return n, nil
}
func (f *fakeCouponRepo) FindUsageByPurchase(ctx context.Context, purchaseId uuid.UUID) (*entity.CouponUsage, error) {
	for _, u := range f.usages {
		if u.PurchaseId == purchaseId {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeCouponRepo) CreateUsage(ctx context.Context, usage *entity.CouponUsage) (bool, error) {
	for i, u := range f.unseenUsages {
		if u.PurchaseId == usage.PurchaseId {
			f.usages = append(f.usages, u)
			f.unseenUsages = append(f.unseenUsages[:i], f.unseenUsages[i+1:]...)
			return false, nil
		}
	}
	for _, u := range f.usages {
		if u.PurchaseId == usage.PurchaseId {
			return false, nil
		}
	}
	f.usages = append(f.usages, usage)
	return true, nil
}
func (f *fakeCouponRepo) IncrementUsage(ctx context.Context, couponId uuid.UUID) error {
	f.usageCount[couponId]++
	return nil
}

type fakeUnitOfWork struct {
	purchases   *fakePurchaseRepo
	enrollments *fakeEnrollmentRepo
	receipts    *fakeReceiptRepo
	coupons     *fakeCouponRepo
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		purchases:   &fakePurchaseRepo{statuses: map[uuid.UUID]entity.PurchaseStatus{}},
		enrollments: &fakeEnrollmentRepo{},
		receipts:    &fakeReceiptRepo{},
		coupons:     &fakeCouponRepo{usageCount: map[uuid.UUID]int{}},
	}
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                   { return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }

func (f *fakeUnitOfWork) UserRepository() contract.UserRepository                 { return nil }
func (f *fakeUnitOfWork) CourseRepository() contract.CourseRepository             { return nil }
func (f *fakeUnitOfWork) PurchaseRepository() contract.PurchaseRepository         { return f.purchases }
func (f *fakeUnitOfWork) PaymentRepository() contract.PaymentRepository           { return nil }
func (f *fakeUnitOfWork) BankTransferRepository() contract.BankTransferRepository { return nil }
func (f *fakeUnitOfWork) CouponRepository() contract.CouponRepository             { return f.coupons }
func (f *fakeUnitOfWork) EnrollmentRepository() contract.EnrollmentRepository     { return f.enrollments }
func (f *fakeUnitOfWork) ReceiptRepository() contract.ReceiptRepository           { return f.receipts }
func (f *fakeUnitOfWork) RefundRepository() contract.RefundRepository             { return nil }
func (f *fakeUnitOfWork) ProgressRepository() contract.ProgressRepository         { return nil }
func (f *fakeUnitOfWork) TaxInvoiceRepository() contract.TaxInvoiceRepository     { return nil }

var _ unitofwork.UnitOfWork = (*fakeUnitOfWork)(nil)

func TestCompleteGrantsAccessAndIssuesReceipt(t *testing.T) {
	uow := newFakeUnitOfWork()
	completer := NewCompleter(nopLogger{})

	purchase := &entity.Purchase{
		Id:       uuid.New(),
		UserId:   uuid.New(),
		CourseId: uuid.New(),
		Amount:   80000,
		Status:   entity.PurchaseStatusPending,
	}

	receipt, err := completer.Complete(context.Background(), uow, purchase)
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseStatusCompleted, uow.purchases.statuses[purchase.Id])
	assert.Len(t, uow.enrollments.rows, 1)
	assert.Len(t, uow.receipts.rows, 1)
	assert.Equal(t, 80000, receipt.Amount)
	assert.Regexp(t, `^R\d+[A-Z0-9]{5}$`, receipt.ReceiptNumber)
	assert.Empty(t, uow.coupons.usages)
}

func TestCompleteRedeemsCouponOnce(t *testing.T) {
	uow := newFakeUnitOfWork()
	completer := NewCompleter(nopLogger{})

	couponId := uuid.New()
	purchase := &entity.Purchase{
		Id:       uuid.New(),
		UserId:   uuid.New(),
		CourseId: uuid.New(),
		Amount:   75000,
		Status:   entity.PurchaseStatusPending,
		Discount: &entity.Discount{
			CouponId:       couponId,
			OriginalAmount: 100000,
			Amount:         25000,
		},
	}

	_, err := completer.Complete(context.Background(), uow, purchase)
	require.NoError(t, err)

	require.Len(t, uow.coupons.usages, 1)
	assert.Equal(t, 25000, uow.coupons.usages[0].DiscountAmount)
	assert.Equal(t, 1, uow.coupons.usageCount[couponId])
}

func TestCompleteIsIdempotentOnReplay(t *testing.T) {
	uow := newFakeUnitOfWork()
	completer := NewCompleter(nopLogger{})

	couponId := uuid.New()
	purchase := &entity.Purchase{
		Id:       uuid.New(),
		UserId:   uuid.New(),
		CourseId: uuid.New(),
		Amount:   50000,
		Status:   entity.PurchaseStatusPending,
		Discount: &entity.Discount{
			CouponId:       couponId,
			OriginalAmount: 60000,
			Amount:         10000,
		},
	}

	first, err := completer.Complete(context.Background(), uow, purchase)
	require.NoError(t, err)

	// Replaying the signal must converge, not duplicate.
	second, err := completer.Complete(context.Background(), uow, purchase)
	require.NoError(t, err)

	assert.Equal(t, first.ReceiptNumber, second.ReceiptNumber)
	assert.Len(t, uow.enrollments.rows, 1)
	assert.Len(t, uow.receipts.rows, 1)
	assert.Len(t, uow.coupons.usages, 1)
	assert.Equal(t, 1, uow.coupons.usageCount[couponId])
}

// A concurrent completion can commit between our existence reads and our
// inserts. The unique indexes swallow the duplicate inserts and completion
// still succeeds with the surviving rows.
func TestCompleteTreatsUniquenessConflictAsDone(t *testing.T) {
	uow := newFakeUnitOfWork()
	completer := NewCompleter(nopLogger{})

	couponId := uuid.New()
	purchase := &entity.Purchase{
		Id:       uuid.New(),
		UserId:   uuid.New(),
		CourseId: uuid.New(),
		Amount:   45000,
		Status:   entity.PurchaseStatusPending,
		Discount: &entity.Discount{
			CouponId:       couponId,
			OriginalAmount: 50000,
			Amount:         5000,
		},
	}

	uow.enrollments.unseen = []*entity.Enrollment{
		{Id: uuid.New(), UserId: purchase.UserId, CourseId: purchase.CourseId},
	}
	uow.receipts.unseen = []*entity.Receipt{
		{Id: uuid.New(), PurchaseId: purchase.Id, ReceiptNumber: "R1700000000000AB12C", Amount: 45000},
	}
	uow.coupons.unseenUsages = []*entity.CouponUsage{
		{Id: uuid.New(), CouponId: couponId, PurchaseId: purchase.Id, UserId: purchase.UserId, DiscountAmount: 5000},
	}

	receipt, err := completer.Complete(context.Background(), uow, purchase)
	require.NoError(t, err)

	// The winner's receipt is returned, nothing is duplicated, and the
	// usage counter is not bumped by the losing insert.
	assert.Equal(t, "R1700000000000AB12C", receipt.ReceiptNumber)
	assert.Len(t, uow.enrollments.rows, 1)
	assert.Len(t, uow.receipts.rows, 1)
	assert.Len(t, uow.coupons.usages, 1)
	assert.Equal(t, 0, uow.coupons.usageCount[couponId])
}
