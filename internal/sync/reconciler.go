package sync

import (
	"context"
	"fmt"

	"github.com/xelth-com/siigozoho/internal/apperrors"
	"github.com/xelth-com/siigozoho/internal/services/siigo"
	"github.com/xelth-com/siigozoho/internal/services/zoho"
)

// ContactWriter creates and updates CRM contacts
type ContactWriter interface {
	CreateContact(ctx context.Context, token string, c zoho.Contact) (*zoho.WriteResult, error)
	UpdateContact(ctx context.Context, token, id string, c zoho.Contact) (*zoho.WriteResult, error)
}

// Action is the write chosen for a record
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// Entry is the outcome of one reconciled record
type Entry struct {
	SiigoID    string
	Action     Action // empty when mapping failed
	CRMID      string // target of an update
	StatusCode int
	Body       string
	Err        error // MappingError, WriteError or transport error
}

// Line renders the entry for the sync log
func (e Entry) Line() string {
	if e.Err != nil {
		if e.Action == "" {
			return fmt.Sprintf("[%s] ERROR %v", e.SiigoID, e.Err)
		}
		return fmt.Sprintf("[%s] ERROR %s: %v", e.SiigoID, e.Action, e.Err)
	}
	return fmt.Sprintf("[%s] %s %d %s", e.SiigoID, e.Action, e.StatusCode, e.Body)
}

// Reconciler writes one Siigo customer into the CRM
type Reconciler struct {
	crm   ContactWriter
	token string
	index ContactIndex
	// crmHasContacts is false when the CRM listing came back empty; every
	// record is then created without consulting the index.
	crmHasContacts bool
}

// NewReconciler binds a writer, token and index snapshot for one run
func NewReconciler(crm ContactWriter, token string, index ContactIndex, crmHasContacts bool) *Reconciler {
	return &Reconciler{crm: crm, token: token, index: index, crmHasContacts: crmHasContacts}
}

// Reconcile maps the customer and creates or updates it. It never fails:
// every problem is reported in the returned entry.
func (r *Reconciler) Reconcile(ctx context.Context, customer siigo.Customer) Entry {
	entry := Entry{SiigoID: customer.ID}

	contact, err := MapCustomer(customer)
	if err != nil {
		entry.Err = err
		return entry
	}

	var (
		result   *zoho.WriteResult
		existing zoho.ContactRef
		found    bool
	)
	if r.crmHasContacts {
		existing, found = r.index.Lookup(customer.ID)
	}

	if found {
		entry.Action = ActionUpdate
		entry.CRMID = existing.ID
		result, err = r.crm.UpdateContact(ctx, r.token, existing.ID, contact)
	} else {
		entry.Action = ActionCreate
		result, err = r.crm.CreateContact(ctx, r.token, contact)
	}
	if err != nil {
		entry.Err = err
		return entry
	}

	entry.StatusCode = result.StatusCode
	entry.Body = result.Body
	if result.Failed() {
		entry.Err = &apperrors.WriteError{Op: string(entry.Action), Status: result.StatusCode, Body: result.Body}
	}
	return entry
}
