package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"eventuras/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// In-memory fakes shared by the service tests.

type fakeEventRepo struct {
	byID   map[int64]*domain.EventInfo
	nextID int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[int64]*domain.EventInfo), nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.EventInfo) error {
	e.ID = f.nextID
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64, orgID int) (*domain.EventInfo, error) {
	e, ok := f.byID[id]
	if !ok || e.OrganizationID != orgID {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventRepo) GetByCode(ctx context.Context, code string, orgID int) (*domain.EventInfo, error) {
	for _, e := range f.byID {
		if e.Code == code && e.OrganizationID == orgID {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByOrganization(ctx context.Context, orgID int, params domain.PaginationParams) ([]*domain.EventInfo, int, error) {
	var out []*domain.EventInfo
	for _, e := range f.byID {
		if e.OrganizationID == orgID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.EventInfo) error {
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[e.ID] = e
	return nil
}

type fakeProductRepo struct {
	products []*domain.Product
	nextID   int64
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	return &fakeProductRepo{products: products, nextID: 100}
}

func (f *fakeProductRepo) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range f.products {
		if p.EventID == eventID && !p.Archived {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) Create(ctx context.Context, p *domain.Product) error {
	p.ID = f.nextID
	f.nextID++
	f.products = append(f.products, p)
	return nil
}

type fakeRegistrationRepo struct {
	byID   map[int64]*domain.Registration
	nextID int64
	// failUpdates makes the next N Update calls lose the optimistic race:
	// the stored version advances (as a concurrent writer would) and the
	// call returns ErrConflict.
	failUpdates int
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{byID: make(map[int64]*domain.Registration), nextID: 1}
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	for _, r := range f.byID {
		if r.EventID == reg.EventID && r.UserID == reg.UserID && r.Status != domain.StatusCancelled {
			return domain.ErrDuplicateRegistration
		}
	}
	reg.ID = f.nextID
	f.nextID++
	reg.Version = 1
	stored := *reg
	f.byID[reg.ID] = &stored
	return nil
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id int64, orgID int) (*domain.Registration, error) {
	r, ok := f.byID[id]
	if !ok || r.OrganizationID != orgID {
		return nil, domain.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRegistrationRepo) GetActiveByEventAndUser(ctx context.Context, eventID int64, userID string) (*domain.Registration, error) {
	for _, r := range f.byID {
		if r.EventID == eventID && r.UserID == userID && r.Status != domain.StatusCancelled {
			copied := *r
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) Update(ctx context.Context, reg *domain.Registration) error {
	stored, ok := f.byID[reg.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if f.failUpdates > 0 {
		f.failUpdates--
		stored.Version++
		return domain.ErrConflict
	}
	if stored.Version != reg.Version {
		return domain.ErrConflict
	}
	updated := *reg
	updated.Version = stored.Version + 1
	f.byID[reg.ID] = &updated
	reg.Version = updated.Version
	return nil
}

func (f *fakeRegistrationRepo) ListByEventID(ctx context.Context, eventID int64, orgID int, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	var out []*domain.Registration
	for _, r := range f.byID {
		if r.EventID == eventID && r.OrganizationID == orgID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (f *fakeRegistrationRepo) CountByEventID(ctx context.Context, eventID int64, orgID int) (map[domain.RegistrationStatus]int, map[domain.RegistrationType]int, error) {
	byStatus := make(map[domain.RegistrationStatus]int)
	byType := make(map[domain.RegistrationType]int)
	for _, r := range f.byID {
		if r.EventID == eventID && r.OrganizationID == orgID {
			byStatus[r.Status]++
			byType[r.Type]++
		}
	}
	return byStatus, byType, nil
}

type fakeOrderRepo struct {
	byID       map[int64]*domain.Order
	logs       map[int64][]string
	nextID     int64
	nextLineID int64
	// failReplaces makes the next N ReplaceLines calls lose the optimistic
	// race, advancing the stored version like a concurrent writer.
	failReplaces int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		byID:       make(map[int64]*domain.Order),
		logs:       make(map[int64][]string),
		nextID:     1,
		nextLineID: 1,
	}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	order.ID = f.nextID
	f.nextID++
	order.Version = 1
	for _, l := range order.Lines {
		l.ID = f.nextLineID
		l.OrderID = order.ID
		f.nextLineID++
	}
	stored := *order
	storedLines := make([]*domain.OrderLine, len(order.Lines))
	for i, l := range order.Lines {
		copied := *l
		storedLines[i] = &copied
	}
	stored.Lines = storedLines
	f.byID[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) copyOf(o *domain.Order) *domain.Order {
	copied := *o
	copied.Lines = make([]*domain.OrderLine, len(o.Lines))
	for i, l := range o.Lines {
		lc := *l
		copied.Lines[i] = &lc
	}
	return &copied
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id int64, orgID int) (*domain.Order, error) {
	o, ok := f.byID[id]
	if !ok || o.OrganizationID != orgID {
		return nil, domain.ErrNotFound
	}
	return f.copyOf(o), nil
}

func (f *fakeOrderRepo) GetOpenByRegistrationID(ctx context.Context, registrationID int64) (*domain.Order, error) {
	for _, o := range f.byID {
		if o.RegistrationID == registrationID && o.Status == domain.OrderDraft {
			return f.copyOf(o), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeOrderRepo) ReplaceLines(ctx context.Context, orderID int64, version int, lines []*domain.OrderLine) error {
	o, ok := f.byID[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	if f.failReplaces > 0 {
		f.failReplaces--
		o.Version++
		return domain.ErrConflict
	}
	if o.Version != version {
		return domain.ErrConflict
	}
	o.Lines = nil
	for _, l := range lines {
		copied := *l
		if copied.ID == 0 {
			copied.ID = f.nextLineID
			f.nextLineID++
		}
		copied.OrderID = orderID
		o.Lines = append(o.Lines, &copied)
	}
	o.Version++
	return nil
}

func (f *fakeOrderRepo) SetStatus(ctx context.Context, orderID int64, status domain.OrderStatus, version int) error {
	o, ok := f.byID[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	if o.Version != version {
		return domain.ErrConflict
	}
	o.Status = status
	o.Version++
	return nil
}

func (f *fakeOrderRepo) ListByIDs(ctx context.Context, ids []int64, orgID int) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, id := range ids {
		if o, ok := f.byID[id]; ok && o.OrganizationID == orgID {
			out = append(out, f.copyOf(o))
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) AppendLog(ctx context.Context, orderID int64, message string) error {
	f.logs[orderID] = append(f.logs[orderID], message)
	return nil
}

func (f *fakeOrderRepo) ListLog(ctx context.Context, orderID int64) ([]*domain.OrderLogEntry, error) {
	var out []*domain.OrderLogEntry
	for i, msg := range f.logs[orderID] {
		out = append(out, &domain.OrderLogEntry{ID: int64(i + 1), OrderID: orderID, Message: msg})
	}
	return out, nil
}

type fakeInvoiceRepo struct {
	byID     map[int64]*domain.Invoice
	attached map[int64]int64 // orderID -> unpaid invoice id
	nextID   int64
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		byID:     make(map[int64]*domain.Invoice),
		attached: make(map[int64]int64),
		nextID:   1,
	}
}

func (f *fakeInvoiceRepo) CreateWithOrders(ctx context.Context, inv *domain.Invoice, orderIDs []int64) error {
	for _, id := range orderIDs {
		if _, taken := f.attached[id]; taken {
			return domain.ErrInvoicingConflict
		}
	}
	inv.ID = f.nextID
	f.nextID++
	stored := *inv
	f.byID[inv.ID] = &stored
	for _, id := range orderIDs {
		f.attached[id] = inv.ID
	}
	return nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id int64, orgID int) (*domain.Invoice, error) {
	inv, ok := f.byID[id]
	if !ok || inv.OrganizationID != orgID {
		return nil, domain.ErrNotFound
	}
	copied := *inv
	return &copied, nil
}

func (f *fakeInvoiceRepo) MarkPaid(ctx context.Context, id int64, orgID int) error {
	inv, ok := f.byID[id]
	if !ok || inv.OrganizationID != orgID {
		return domain.ErrNotFound
	}
	inv.Paid = true
	for _, orderID := range inv.OrderIDs {
		delete(f.attached, orderID)
	}
	return nil
}

type fakeSettingsRepo struct {
	rows map[int]map[domain.ChannelKind]*domain.ChannelSettings
}

func newFakeSettingsRepo(rows ...*domain.ChannelSettings) *fakeSettingsRepo {
	f := &fakeSettingsRepo{rows: make(map[int]map[domain.ChannelKind]*domain.ChannelSettings)}
	for _, r := range rows {
		if f.rows[r.OrganizationID] == nil {
			f.rows[r.OrganizationID] = make(map[domain.ChannelKind]*domain.ChannelSettings)
		}
		f.rows[r.OrganizationID][r.Kind] = r
	}
	return f
}

func (f *fakeSettingsRepo) GetByOrgAndKind(ctx context.Context, orgID int, kind domain.ChannelKind) (*domain.ChannelSettings, error) {
	if byKind, ok := f.rows[orgID]; ok {
		if s, ok := byKind[kind]; ok {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeNotifier records outgoing messages for assertion.
type fakeNotifier struct {
	emails []*domain.EmailMessage
	sms    []*domain.SmsMessage
	err    error
}

func (f *fakeNotifier) SendEmail(ctx context.Context, orgID int, msg *domain.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.emails = append(f.emails, msg)
	return nil
}

func (f *fakeNotifier) SendSms(ctx context.Context, orgID int, msg *domain.SmsMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sms = append(f.sms, msg)
	return nil
}

func (f *fakeNotifier) ChannelHealth(ctx context.Context, orgID int) []domain.ChannelHealth {
	return nil
}

// recordingEmailSender is a test double for one email channel.
type recordingEmailSender struct {
	name string
	sent []*domain.EmailMessage
	err  error
}

func (r *recordingEmailSender) Send(ctx context.Context, msg *domain.EmailMessage) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingEmailSender) CheckHealth(ctx context.Context) error { return r.err }

// recordingSmsSender is a test double for one SMS channel.
type recordingSmsSender struct {
	sent []*domain.SmsMessage
	err  error
}

func (r *recordingSmsSender) Send(ctx context.Context, msg *domain.SmsMessage) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSmsSender) CheckHealth(ctx context.Context) error { return r.err }

func mustLine(o *domain.Order, productID int64) *domain.OrderLine {
	for _, l := range o.Lines {
		if l.ProductID == productID {
			return l
		}
	}
	panic(fmt.Sprintf("no line for product %d", productID))
}
