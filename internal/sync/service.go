package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xelth-com/siigozoho/internal/services/siigo"
	"github.com/xelth-com/siigozoho/internal/services/zoho"
)

// ErrInvalidRequest is returned for incomplete or malformed sync requests
var ErrInvalidRequest = errors.New("invalid sync request")

// CRM is the Zoho side of the sync
type CRM interface {
	UserSource
	ContactWriter
	ExchangeCode(ctx context.Context, code string) (string, error)
	ListContacts(ctx context.Context, token string) ([]zoho.ContactRef, error)
}

// Accounting is the Siigo side of the sync
type Accounting interface {
	Authenticate(ctx context.Context) (*siigo.Session, error)
	CountCustomers(ctx context.Context, s *siigo.Session, since string) (int, int, error)
	FetchCustomers(ctx context.Context, s *siigo.Session, since string, page int) ([]siigo.Customer, error)
}

// Request starts a sync run
type Request struct {
	Since       string // Siigo created_start filter, YYYY-MM-DD
	Code        string // Zoho authorization code
	NotifyEmail string
}

// Validate checks required fields and normalises Since to a date
func (r *Request) Validate() error {
	if r.Since == "" || r.Code == "" {
		return fmt.Errorf("%w: fechaSincronizacion and codigoZoho are required", ErrInvalidRequest)
	}
	if _, err := time.Parse(time.DateOnly, r.Since); err == nil {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, r.Since)
	if err != nil {
		return fmt.Errorf("%w: fechaSincronizacion must be YYYY-MM-DD", ErrInvalidRequest)
	}
	r.Since = ts.Format(time.DateOnly)
	return nil
}

// Summary counts what a run did
type Summary struct {
	SourceTotal int `json:"source_total"`
	Processed   int `json:"processed"`
	Created     int `json:"created"`
	Updated     int `json:"updated"`
	Failed      int `json:"failed"`
	CRMContacts int `json:"crm_contacts"`
}

// Result is the outcome of a completed run
type Result struct {
	SyncID  string
	Summary Summary
	Log     *Log
}

// Service runs the Siigo to Zoho contact sync
type Service struct {
	crm        CRM
	accounting Accounting
	authorizer *Authorizer
	log        zerolog.Logger
}

// NewService creates the sync service. allowList holds the CRM user emails
// permitted to trigger a run.
func NewService(crm CRM, accounting Accounting, allowList []string, log zerolog.Logger) *Service {
	return &Service{
		crm:        crm,
		accounting: accounting,
		authorizer: NewAuthorizer(crm, allowList),
		log:        log.With().Str("component", "sync").Logger(),
	}
}

// Run executes one full sync. Authentication, authorization and counting
// failures abort the run before any write; per-record failures only end up
// in the log. Once started, a run is not cancelled by its caller: a client
// that hangs up does not leave the CRM half written.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	syncID := uuid.NewString()
	log := s.log.With().Str("sync_id", syncID).Logger()
	log.Info().Str("since", req.Since).Str("notify", req.NotifyEmail).Msg("🔄 Sync started")

	// 1. Tokens and authorization
	zohoToken, err := s.crm.ExchangeCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Check(ctx, zohoToken); err != nil {
		log.Warn().Err(err).Msg("Sync denied")
		return nil, err
	}
	session, err := s.accounting.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	// 2. How many Siigo customers to process
	total, pages, err := s.accounting.CountCustomers(ctx, session, req.Since)
	if err != nil {
		return nil, err
	}

	// 3. Snapshot of the CRM, partial on failure
	contacts, err := s.crm.ListContacts(ctx, zohoToken)
	if err != nil {
		log.Warn().Err(err).Int("fetched", len(contacts)).Msg("Continuing with a partial CRM listing")
	}
	reconciler := NewReconciler(s.crm, zohoToken, IndexBySiigoID(contacts), len(contacts) > 0)

	result := &Result{
		SyncID: syncID,
		Log:    &Log{},
		Summary: Summary{
			SourceTotal: total,
			CRMContacts: len(contacts),
		},
	}

	// 4. Walk the Siigo pages
	for page := 1; page <= pages; page++ {
		customers, err := s.accounting.FetchCustomers(ctx, session, req.Since, page)
		if err != nil {
			log.Error().Err(err).Int("page", page).Msg("❌ Sync aborted")
			return nil, err
		}

		for _, customer := range customers {
			if result.Summary.Processed == total {
				break
			}
			result.Summary.Processed++

			entry := reconciler.Reconcile(ctx, customer)
			result.Log.Add(entry.Line())
			tally(&result.Summary, entry)

			if entry.Err != nil {
				log.Warn().Err(entry.Err).Str("siigo_id", entry.SiigoID).Msg("Record not synced")
			}
		}
	}

	log.Info().
		Int("processed", result.Summary.Processed).
		Int("created", result.Summary.Created).
		Int("updated", result.Summary.Updated).
		Int("failed", result.Summary.Failed).
		Msg("✅ Sync completed")

	return result, nil
}

func tally(sum *Summary, e Entry) {
	switch {
	case e.Err != nil:
		sum.Failed++
	case e.Action == ActionCreate:
		sum.Created++
	case e.Action == ActionUpdate:
		sum.Updated++
	}
}
