package core_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"casetrack-backend-go/internal/db"
	"casetrack-backend-go/internal/models"
)

// In-memory repository fakes backing the service tests. Error injection is
// per-method via the err* fields.

type fakeOrgRepo struct {
	orgs    map[string]*models.Organization
	nextID  int
	errList error
	errGet  error
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[string]*models.Organization)}
}

func (r *fakeOrgRepo) add(org *models.Organization) string {
	r.nextID++
	id := fmt.Sprintf("org-%d", r.nextID)
	org.ID = id
	r.orgs[id] = org
	return id
}

func (r *fakeOrgRepo) Create(_ context.Context, org *models.Organization) (string, error) {
	return r.add(org), nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id string) (*models.Organization, error) {
	if r.errGet != nil {
		return nil, r.errGet
	}
	org, ok := r.orgs[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *org
	return &copied, nil
}

func (r *fakeOrgRepo) List(_ context.Context) ([]*models.Organization, error) {
	if r.errList != nil {
		return nil, r.errList
	}
	ids := make([]string, 0, len(r.orgs))
	for id := range r.orgs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*models.Organization, 0, len(ids))
	for _, id := range ids {
		copied := *r.orgs[id]
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeOrgRepo) Update(_ context.Context, id string, fields map[string]interface{}) error {
	org, ok := r.orgs[id]
	if !ok {
		return nil // merge semantics: absent documents are not an error
	}
	for k, v := range fields {
		switch k {
		case "subscriptionPlan":
			org.SubscriptionPlan = models.SubscriptionPlan(v.(string))
		case "subscriptionStatus":
			org.SubscriptionStatus = models.SubscriptionStatus(v.(string))
		case "maxUsers":
			org.MaxUsers = v.(int)
		case "maxCases":
			org.MaxCases = v.(int)
		case "trialEndDate":
			t := v.(time.Time)
			org.TrialEndDate = &t
		}
	}
	org.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeOrgRepo) IncrementUsers(_ context.Context, id string, delta int) error {
	org, ok := r.orgs[id]
	if !ok {
		return db.ErrNotFound
	}
	org.CurrentUsers += delta
	return nil
}

func (r *fakeOrgRepo) IncrementCases(_ context.Context, id string, delta int) error {
	org, ok := r.orgs[id]
	if !ok {
		return db.ErrNotFound
	}
	org.CurrentCases += delta
	return nil
}

func (r *fakeOrgRepo) ReserveUserSlot(_ context.Context, id string) error {
	org, ok := r.orgs[id]
	if !ok {
		return db.ErrNotFound
	}
	if org.MaxUsers != -1 && org.CurrentUsers >= org.MaxUsers {
		return db.ErrCapacityExhausted
	}
	org.CurrentUsers++
	return nil
}

func (r *fakeOrgRepo) ReserveCaseSlot(_ context.Context, id string) error {
	org, ok := r.orgs[id]
	if !ok {
		return db.ErrNotFound
	}
	if org.MaxCases != -1 && org.CurrentCases >= org.MaxCases {
		return db.ErrCapacityExhausted
	}
	org.CurrentCases++
	return nil
}

func (r *fakeOrgRepo) ReleaseUserSlot(_ context.Context, id string) error {
	org, ok := r.orgs[id]
	if !ok {
		return db.ErrNotFound
	}
	if org.CurrentUsers > 0 {
		org.CurrentUsers--
	}
	return nil
}

func (r *fakeOrgRepo) ReleaseCaseSlot(_ context.Context, id string) error {
	org, ok := r.orgs[id]
	if !ok {
		return db.ErrNotFound
	}
	if org.CurrentCases > 0 {
		org.CurrentCases--
	}
	return nil
}

type fakeUserRepo struct {
	users  map[string]*models.User
	errGet error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	if r.errGet != nil {
		return nil, r.errGet
	}
	user, ok := r.users[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, userID string, fields map[string]interface{}) error {
	user, ok := r.users[userID]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			user.Name = v.(string)
		case "firmName":
			user.FirmName = v.(string)
		case "logoUrl":
			user.LogoURL = v.(string)
		case "organizationId":
			user.OrganizationID = v.(string)
		}
	}
	return nil
}

func (r *fakeUserRepo) CountByOrganization(_ context.Context, organizationID string) (int, error) {
	n := 0
	for _, u := range r.users {
		if u.OrganizationID == organizationID {
			n++
		}
	}
	return n, nil
}

type fakeCaseRepo struct {
	cases     map[string]*models.Case
	nextID    int
	errCreate error
	errCount  error
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{cases: make(map[string]*models.Case)}
}

func (r *fakeCaseRepo) Create(_ context.Context, c *models.Case) (string, error) {
	if r.errCreate != nil {
		return "", r.errCreate
	}
	r.nextID++
	id := fmt.Sprintf("case-%d", r.nextID)
	copied := *c
	copied.ID = id
	r.cases[id] = &copied
	return id, nil
}

func (r *fakeCaseRepo) GetByID(_ context.Context, caseID string) (*models.Case, error) {
	c, ok := r.cases[caseID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCaseRepo) ListByOrganization(_ context.Context, organizationID string) ([]*models.Case, error) {
	ids := make([]string, 0, len(r.cases))
	for id, c := range r.cases {
		if c.OrganizationID == organizationID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := make([]*models.Case, 0, len(ids))
	for _, id := range ids {
		copied := *r.cases[id]
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeCaseRepo) Update(_ context.Context, caseID string, fields map[string]interface{}) error {
	c, ok := r.cases[caseID]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "title":
			c.Title = v.(string)
		case "status":
			c.Status = models.CaseStatus(v.(string))
		case "clientId":
			c.ClientID = v.(string)
		}
	}
	return nil
}

func (r *fakeCaseRepo) Delete(_ context.Context, caseID string) error {
	if _, ok := r.cases[caseID]; !ok {
		return db.ErrNotFound
	}
	delete(r.cases, caseID)
	return nil
}

func (r *fakeCaseRepo) CountByOrganization(_ context.Context, organizationID string) (int, error) {
	if r.errCount != nil {
		return 0, r.errCount
	}
	n := 0
	for _, c := range r.cases {
		if c.OrganizationID == organizationID {
			n++
		}
	}
	return n, nil
}

type fakeClientRepo struct {
	clients map[string]*models.Client
	nextID  int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*models.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, client *models.Client) (string, error) {
	r.nextID++
	id := fmt.Sprintf("client-%d", r.nextID)
	copied := *client
	copied.ID = id
	r.clients[id] = &copied
	return id, nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, clientID string) (*models.Client, error) {
	client, ok := r.clients[clientID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *client
	return &copied, nil
}

func (r *fakeClientRepo) ListByOrganization(_ context.Context, organizationID string) ([]*models.Client, error) {
	out := make([]*models.Client, 0)
	for _, c := range r.clients {
		if c.OrganizationID == organizationID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Update(_ context.Context, clientID string, fields map[string]interface{}) error {
	client, ok := r.clients[clientID]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			client.Name = v.(string)
		case "email":
			client.Email = v.(string)
		case "notes":
			client.Notes = v.(string)
		}
	}
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, clientID string) error {
	if _, ok := r.clients[clientID]; !ok {
		return db.ErrNotFound
	}
	delete(r.clients, clientID)
	return nil
}

func (r *fakeClientRepo) CountByOrganization(_ context.Context, organizationID string) (int, error) {
	n := 0
	for _, c := range r.clients {
		if c.OrganizationID == organizationID {
			n++
		}
	}
	return n, nil
}

type fakeHearingRepo struct {
	hearings map[string]*models.Hearing
	nextID   int
}

func newFakeHearingRepo() *fakeHearingRepo {
	return &fakeHearingRepo{hearings: make(map[string]*models.Hearing)}
}

func (r *fakeHearingRepo) Create(_ context.Context, hearing *models.Hearing) (string, error) {
	r.nextID++
	id := fmt.Sprintf("hearing-%d", r.nextID)
	copied := *hearing
	copied.ID = id
	r.hearings[id] = &copied
	return id, nil
}

func (r *fakeHearingRepo) GetByID(_ context.Context, hearingID string) (*models.Hearing, error) {
	h, ok := r.hearings[hearingID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *h
	return &copied, nil
}

func (r *fakeHearingRepo) ListByCase(_ context.Context, caseID string) ([]*models.Hearing, error) {
	out := make([]*models.Hearing, 0)
	for _, h := range r.hearings {
		if h.CaseID == caseID {
			copied := *h
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeHearingRepo) Update(_ context.Context, hearingID string, fields map[string]interface{}) error {
	h, ok := r.hearings[hearingID]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "purpose":
			h.Purpose = v.(string)
		case "outcome":
			h.Outcome = v.(string)
		case "date":
			h.Date = v.(time.Time)
		}
	}
	return nil
}

func (r *fakeHearingRepo) Delete(_ context.Context, hearingID string) error {
	delete(r.hearings, hearingID)
	return nil
}

func (r *fakeHearingRepo) CountByCase(_ context.Context, caseID string) (int, error) {
	n := 0
	for _, h := range r.hearings {
		if h.CaseID == caseID {
			n++
		}
	}
	return n, nil
}

type fakeTaskRepo struct {
	tasks  map[string]*models.Task
	nextID int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*models.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *models.Task) (string, error) {
	r.nextID++
	id := fmt.Sprintf("task-%d", r.nextID)
	copied := *task
	copied.ID = id
	r.tasks[id] = &copied
	return id, nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, taskID string) (*models.Task, error) {
	task, ok := r.tasks[taskID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) ListByCase(_ context.Context, caseID string) ([]*models.Task, error) {
	out := make([]*models.Task, 0)
	for _, task := range r.tasks {
		if task.CaseID == caseID {
			copied := *task
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, taskID string, fields map[string]interface{}) error {
	task, ok := r.tasks[taskID]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "title":
			task.Title = v.(string)
		case "status":
			task.Status = models.TaskStatus(v.(string))
		}
	}
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, taskID string) error {
	delete(r.tasks, taskID)
	return nil
}

func (r *fakeTaskRepo) CountByCase(_ context.Context, caseID string) (int, error) {
	n := 0
	for _, task := range r.tasks {
		if task.CaseID == caseID {
			n++
		}
	}
	return n, nil
}

type fakePaymentRepo struct {
	payments map[string]*models.Payment
	nextID   int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*models.Payment)}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) (string, error) {
	r.nextID++
	id := fmt.Sprintf("payment-%d", r.nextID)
	copied := *payment
	copied.ID = id
	r.payments[id] = &copied
	return id, nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, paymentID string) (*models.Payment, error) {
	p, ok := r.payments[paymentID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePaymentRepo) ListByClient(_ context.Context, clientID string) ([]*models.Payment, error) {
	out := make([]*models.Payment, 0)
	for _, p := range r.payments {
		if p.ClientID == clientID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListByCase(_ context.Context, caseID string) ([]*models.Payment, error) {
	out := make([]*models.Payment, 0)
	for _, p := range r.payments {
		if p.CaseID == caseID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, paymentID string, fields map[string]interface{}) error {
	return nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, paymentID string) error {
	delete(r.payments, paymentID)
	return nil
}

type fakeDocumentRepo struct {
	docs   map[string]*models.Document
	nextID int
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*models.Document)}
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *models.Document) (string, error) {
	r.nextID++
	id := fmt.Sprintf("doc-%d", r.nextID)
	copied := *doc
	copied.ID = id
	r.docs[id] = &copied
	return id, nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, documentID string) (*models.Document, error) {
	doc, ok := r.docs[documentID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeDocumentRepo) ListByCase(_ context.Context, caseID string) ([]*models.Document, error) {
	out := make([]*models.Document, 0)
	for _, doc := range r.docs {
		if doc.CaseID == caseID {
			copied := *doc
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, documentID string) error {
	delete(r.docs, documentID)
	return nil
}

func (r *fakeDocumentRepo) CountByCase(_ context.Context, caseID string) (int, error) {
	n := 0
	for _, doc := range r.docs {
		if doc.CaseID == caseID {
			n++
		}
	}
	return n, nil
}

type fakeConversationRepo struct {
	messages map[string]*models.ConversationMessage
	nextID   int
	listenCh chan *models.ConversationMessage
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{messages: make(map[string]*models.ConversationMessage)}
}

func (r *fakeConversationRepo) Create(_ context.Context, msg *models.ConversationMessage) (string, error) {
	r.nextID++
	id := fmt.Sprintf("msg-%d", r.nextID)
	copied := *msg
	copied.ID = id
	r.messages[id] = &copied
	if r.listenCh != nil {
		r.listenCh <- &copied
	}
	return id, nil
}

func (r *fakeConversationRepo) ListByCase(_ context.Context, caseID string) ([]*models.ConversationMessage, error) {
	out := make([]*models.ConversationMessage, 0)
	for _, msg := range r.messages {
		if msg.CaseID == caseID {
			copied := *msg
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	return out, nil
}

func (r *fakeConversationRepo) Listen(ctx context.Context, _ string) (<-chan *models.ConversationMessage, error) {
	r.listenCh = make(chan *models.ConversationMessage, 16)
	go func() {
		<-ctx.Done()
		close(r.listenCh)
	}()
	return r.listenCh, nil
}

func (r *fakeConversationRepo) CountByCase(_ context.Context, caseID string) (int, error) {
	n := 0
	for _, msg := range r.messages {
		if msg.CaseID == caseID {
			n++
		}
	}
	return n, nil
}

type fakeActivityRepo struct {
	entries []models.ActivityLog
	err     error
}

func (r *fakeActivityRepo) Create(_ context.Context, entry models.ActivityLog) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

type fakeIdentityProvider struct {
	users map[string]*models.User
	err   error
}

func newFakeIdentityProvider() *fakeIdentityProvider {
	return &fakeIdentityProvider{users: make(map[string]*models.User)}
}

func (p *fakeIdentityProvider) LookupUser(_ context.Context, uid string) (*models.User, error) {
	if p.err != nil {
		return nil, p.err
	}
	user, ok := p.users[uid]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *user
	return &copied, nil
}
