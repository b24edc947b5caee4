package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/bersihin/bersihin/internal/domain/errors"
	"github.com/bersihin/bersihin/internal/domain/model"
	"github.com/bersihin/bersihin/internal/domain/repository"
)

// Repositories is an in-memory repository.Factory for tests.
type Repositories struct {
	OrdersStub        *OrderRepositoryStub
	PaymentsStub      *PaymentRepositoryStub
	CleanersStub      *CleanerRepositoryStub
	CatalogStub       *CatalogRepositoryStub
	FeedbackStub      *FeedbackRepositoryStub
	NotificationsStub *NotificationRepositoryStub
}

// NewRepositories builds a connected in-memory factory: the order,
// payment and notification stubs share state so transactional flows
// (settle + advance + notify) behave like the real storage.
func NewRepositories() *Repositories {
	orders := NewOrderRepositoryStub()
	notifications := &NotificationRepositoryStub{}
	payments := &PaymentRepositoryStub{orders: orders, notifications: notifications}
	orders.payments = payments
	orders.notifications = notifications
	return &Repositories{
		OrdersStub:        orders,
		PaymentsStub:      payments,
		CleanersStub:      NewCleanerRepositoryStub(),
		CatalogStub:       NewCatalogRepositoryStub(),
		FeedbackStub:      &FeedbackRepositoryStub{},
		NotificationsStub: notifications,
	}
}

func (r *Repositories) Orders() repository.OrderRepository               { return r.OrdersStub }
func (r *Repositories) Payments() repository.PaymentRepository           { return r.PaymentsStub }
func (r *Repositories) Cleaners() repository.CleanerRepository           { return r.CleanersStub }
func (r *Repositories) Catalog() repository.CatalogRepository            { return r.CatalogStub }
func (r *Repositories) Feedback() repository.FeedbackRepository          { return r.FeedbackStub }
func (r *Repositories) Notifications() repository.NotificationRepository { return r.NotificationsStub }

// OrderRepositoryStub keeps orders in memory and maintains the dense
// order-number sequence the way the real storage does.
type OrderRepositoryStub struct {
	mu            sync.Mutex
	ByID          map[uuid.UUID]*model.Order
	payments      *PaymentRepositoryStub
	notifications *NotificationRepositoryStub
	Err           error

	CreateFn func(context.Context, repository.OrderDraft) (*model.Order, error)
}

// NewOrderRepositoryStub constructs the stub with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{ByID: map[uuid.UUID]*model.Order{}}
}

func (s *OrderRepositoryStub) CreateWithPayment(ctx context.Context, draft repository.OrderDraft) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var next int64 = 1
	for _, o := range s.ByID {
		if o.OrderNumber >= next {
			next = o.OrderNumber + 1
		}
	}

	now := time.Now()
	order := &model.Order{
		ID:             uuid.New(),
		OrderNumber:    next,
		CustomerID:     draft.CustomerID,
		WorkerID:       draft.WorkerID,
		PackageID:      draft.PackageID,
		Status:         model.OrderStatusPending,
		Lat:            draft.Lat,
		Lng:            draft.Lng,
		Address:        draft.Address,
		ScheduledAt:    draft.ScheduledAt,
		BasePrice:      draft.BasePrice,
		DistancePrice:  draft.DistancePrice,
		ExtraPrice:     draft.ExtraPrice,
		Surge:          draft.Surge,
		TotalPrice:     draft.TotalPrice,
		DistanceMeters: draft.DistanceMeters,
		ETAMinutes:     draft.ETAMinutes,
		Extras:         draft.Extras,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.ByID[order.ID] = order

	if s.payments != nil {
		s.payments.put(&model.Payment{
			ID:        uuid.New(),
			OrderID:   order.ID,
			Method:    draft.PaymentMethod,
			Amount:    draft.TotalPrice,
			Status:    model.PaymentStatusPending,
			CreatedAt: now,
		})
	}

	clone := *order
	return &clone, nil
}

func (s *OrderRepositoryStub) Get(_ context.Context, id uuid.UUID) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (s *OrderRepositoryStub) GetByNumber(_ context.Context, number int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.ByID {
		if order.OrderNumber == number {
			clone := *order
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, order := range s.ByID {
		if order.CustomerID == customerID {
			result = append(result, *order)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *OrderRepositoryStub) UpdateStatus(_ context.Context, orderID uuid.UUID, from, to model.OrderStatus) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.ByID[orderID]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if order.Status != from {
		return false, nil
	}
	order.Status = to
	order.UpdatedAt = time.Now()
	return true, nil
}

func (s *OrderRepositoryStub) AssignWorker(_ context.Context, orderID, workerID uuid.UUID) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.ByID[orderID]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusPending && order.Status != model.OrderStatusProcessing {
		return false, nil
	}
	order.WorkerID = &workerID
	order.Status = model.OrderStatusInProgress
	order.UpdatedAt = time.Now()
	return true, nil
}

func (s *OrderRepositoryStub) SetAfterPhotos(_ context.Context, orderID uuid.UUID, photos []string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.ByID[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.AfterPhotos = photos
	order.UpdatedAt = time.Now()
	return nil
}

func (s *OrderRepositoryStub) Complete(ctx context.Context, orderID uuid.UUID) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	order, ok := s.ByID[orderID]
	if !ok {
		s.mu.Unlock()
		return domainErrors.ErrNotFound
	}
	order.Status = model.OrderStatusCompleted
	order.UpdatedAt = time.Now()
	s.mu.Unlock()

	if s.payments != nil {
		if payment, err := s.payments.GetByOrder(ctx, orderID); err == nil && payment.Status == model.PaymentStatusPending {
			s.payments.settle(payment.ID, "")
		}
	}
	return nil
}

func (s *OrderRepositoryStub) Cancel(_ context.Context, orderID uuid.UUID, notification repository.NotificationDraft) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	order, ok := s.ByID[orderID]
	if !ok {
		s.mu.Unlock()
		return false, domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusPending && order.Status != model.OrderStatusProcessing {
		s.mu.Unlock()
		return false, nil
	}
	order.Status = model.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	s.mu.Unlock()

	if s.notifications != nil {
		_ = s.notifications.Create(context.Background(), notification)
	}
	return true, nil
}

func (s *OrderRepositoryStub) StaleUnpaid(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.payments == nil {
		return nil, nil
	}

	s.mu.Lock()
	orders := make([]model.Order, 0, len(s.ByID))
	for _, order := range s.ByID {
		orders = append(orders, *order)
	}
	s.mu.Unlock()

	var result []model.Order
	for _, order := range orders {
		if order.Status != model.OrderStatusPending {
			continue
		}
		payment, err := s.payments.GetByOrder(ctx, order.ID)
		if err != nil {
			continue
		}
		if payment.Method.Cash() || payment.Status != model.PaymentStatusPending {
			continue
		}
		if payment.CreatedAt.After(cutoff) {
			continue
		}
		result = append(result, order)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (s *OrderRepositoryStub) Delete(_ context.Context, ids ...uuid.UUID) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.ByID, id)
	}

	// Renumber survivors into a dense 1..N sequence by creation time.
	survivors := make([]*model.Order, 0, len(s.ByID))
	for _, order := range s.ByID {
		survivors = append(survivors, order)
	}
	sort.Slice(survivors, func(i, j int) bool { return survivors[i].CreatedAt.Before(survivors[j].CreatedAt) })
	for i, order := range survivors {
		order.OrderNumber = int64(i + 1)
	}
	return nil
}

// PaymentRepositoryStub keeps payments in memory.
type PaymentRepositoryStub struct {
	mu            sync.Mutex
	ByID          map[uuid.UUID]*model.Payment
	orders        *OrderRepositoryStub
	notifications *NotificationRepositoryStub
	Err           error

	MarkPaidFn func(context.Context, uuid.UUID, string, repository.NotificationDraft) (bool, error)
}

func (s *PaymentRepositoryStub) put(p *model.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ByID == nil {
		s.ByID = map[uuid.UUID]*model.Payment{}
	}
	s.ByID[p.ID] = p
}

// SetCreatedAt rewrites the payment creation time, used to age
// payments in sweeper tests.
func (s *PaymentRepositoryStub) SetCreatedAt(orderID uuid.UUID, createdAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.ByID {
		if p.OrderID == orderID {
			p.CreatedAt = createdAt
		}
	}
}

func (s *PaymentRepositoryStub) GetByOrder(_ context.Context, orderID uuid.UUID) (*model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.ByID {
		if p.OrderID == orderID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *PaymentRepositoryStub) GetByTransactionID(_ context.Context, transactionID string) (*model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.ByID {
		if p.TransactionID != nil && *p.TransactionID == transactionID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *PaymentRepositoryStub) AttachToken(_ context.Context, orderID uuid.UUID, token string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.ByID {
		if p.OrderID == orderID {
			p.Token = &token
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *PaymentRepositoryStub) settle(paymentID uuid.UUID, transactionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.ByID[paymentID]
	if !ok || p.Status == model.PaymentStatusPaid {
		return false
	}
	p.Status = model.PaymentStatusPaid
	now := time.Now()
	p.PaidAt = &now
	if transactionID != "" {
		p.TransactionID = &transactionID
	}
	return true
}

func (s *PaymentRepositoryStub) MarkPaid(ctx context.Context, paymentID uuid.UUID, transactionID string, notification repository.NotificationDraft) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, paymentID, transactionID, notification)
	}

	if !s.settle(paymentID, transactionID) {
		return false, nil
	}

	s.mu.Lock()
	orderID := s.ByID[paymentID].OrderID
	s.mu.Unlock()

	if s.orders != nil {
		_, _ = s.orders.UpdateStatus(ctx, orderID, model.OrderStatusPending, model.OrderStatusProcessing)
	}
	if s.notifications != nil {
		_ = s.notifications.Create(ctx, notification)
	}
	return true, nil
}

// CleanerRepositoryStub stores shadow records keyed by natural key.
type CleanerRepositoryStub struct {
	mu         sync.Mutex
	ByExternal map[string]*model.Cleaner
	Err        error
}

// NewCleanerRepositoryStub constructs the stub with initialized maps.
func NewCleanerRepositoryStub() *CleanerRepositoryStub {
	return &CleanerRepositoryStub{ByExternal: map[string]*model.Cleaner{}}
}

func (s *CleanerRepositoryStub) EnsureBookkeeping(_ context.Context, externalID, name string) (uuid.UUID, error) {
	if s.Err != nil {
		return uuid.Nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cleaner, ok := s.ByExternal[externalID]; ok {
		return cleaner.ID, nil
	}
	cleaner := &model.Cleaner{ID: uuid.New(), ExternalID: externalID, Name: name, CreatedAt: time.Now()}
	s.ByExternal[externalID] = cleaner
	return cleaner.ID, nil
}

func (s *CleanerRepositoryStub) Get(_ context.Context, id uuid.UUID) (*model.Cleaner, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cleaner := range s.ByExternal {
		if cleaner.ID == id {
			clone := *cleaner
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// CatalogRepositoryStub serves a fixed package/extra catalog.
type CatalogRepositoryStub struct {
	Packages map[uuid.UUID]model.Package
	Extras   map[uuid.UUID]model.Extra
	Err      error
}

// NewCatalogRepositoryStub constructs the stub with initialized maps.
func NewCatalogRepositoryStub() *CatalogRepositoryStub {
	return &CatalogRepositoryStub{
		Packages: map[uuid.UUID]model.Package{},
		Extras:   map[uuid.UUID]model.Extra{},
	}
}

func (s *CatalogRepositoryStub) PackageByID(_ context.Context, id uuid.UUID) (*model.Package, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	pkg, ok := s.Packages[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &pkg, nil
}

func (s *CatalogRepositoryStub) ExtrasByIDs(_ context.Context, ids []uuid.UUID) ([]model.Extra, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Extra
	for _, id := range ids {
		if extra, ok := s.Extras[id]; ok {
			result = append(result, extra)
		}
	}
	return result, nil
}

// FeedbackRepositoryStub stores tips and ratings per order.
type FeedbackRepositoryStub struct {
	mu      sync.Mutex
	Tips    map[uuid.UUID]*model.Tip
	Ratings map[uuid.UUID]*model.Rating
	Err     error
}

func (s *FeedbackRepositoryStub) CreateTip(_ context.Context, orderID uuid.UUID, amount int64) (*model.Tip, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Tips == nil {
		s.Tips = map[uuid.UUID]*model.Tip{}
	}
	if _, exists := s.Tips[orderID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	tip := &model.Tip{ID: uuid.New(), OrderID: orderID, Amount: amount, CreatedAt: time.Now()}
	s.Tips[orderID] = tip
	clone := *tip
	return &clone, nil
}

func (s *FeedbackRepositoryStub) TipByOrder(_ context.Context, orderID uuid.UUID) (*model.Tip, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tip, ok := s.Tips[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *tip
	return &clone, nil
}

func (s *FeedbackRepositoryStub) CreateRating(_ context.Context, orderID uuid.UUID, stars int, comment string) (*model.Rating, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Ratings == nil {
		s.Ratings = map[uuid.UUID]*model.Rating{}
	}
	if _, exists := s.Ratings[orderID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	rating := &model.Rating{ID: uuid.New(), OrderID: orderID, Stars: stars, Comment: comment, CreatedAt: time.Now()}
	s.Ratings[orderID] = rating
	clone := *rating
	return &clone, nil
}

// NotificationRepositoryStub records produced notifications.
type NotificationRepositoryStub struct {
	mu      sync.Mutex
	Records []model.Notification
	Err     error
}

func (s *NotificationRepositoryStub) Create(_ context.Context, draft repository.NotificationDraft) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Records = append(s.Records, model.Notification{
		ID:        uuid.New(),
		UserID:    draft.UserID,
		OrderID:   draft.OrderID,
		Title:     draft.Title,
		Message:   draft.Message,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *NotificationRepositoryStub) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Notification, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Notification
	for _, n := range s.Records {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

// Count returns how many notifications were produced.
func (s *NotificationRepositoryStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Records)
}
