package sync

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/xelth-com/siigozoho/internal/services/siigo"
	"github.com/xelth-com/siigozoho/internal/services/zoho"
)

type writeCall struct {
	Method  string
	CRMID   string
	Contact zoho.Contact
}

// fakeCRM records every write and answers from canned data
type fakeCRM struct {
	token       string
	exchangeErr error
	user        *zoho.User
	userErr     error
	contacts    []zoho.ContactRef
	listErr     error
	failFor     map[string]int // SiigoID -> status to answer writes with
	writeErr    map[string]error

	// cancelAfter calls cancel once that many writes happened
	cancelAfter int
	cancel      func()

	calls    []writeCall
	listed   bool
	exchange int
}

func (f *fakeCRM) ExchangeCode(ctx context.Context, code string) (string, error) {
	f.exchange++
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	return f.token, nil
}

func (f *fakeCRM) CurrentUser(ctx context.Context, token string) (*zoho.User, error) {
	return f.user, f.userErr
}

func (f *fakeCRM) ListContacts(ctx context.Context, token string) ([]zoho.ContactRef, error) {
	f.listed = true
	return f.contacts, f.listErr
}

func (f *fakeCRM) CreateContact(ctx context.Context, token string, c zoho.Contact) (*zoho.WriteResult, error) {
	f.calls = append(f.calls, writeCall{Method: http.MethodPost, Contact: c})
	return f.answer(ctx, c, http.StatusCreated)
}

func (f *fakeCRM) UpdateContact(ctx context.Context, token, id string, c zoho.Contact) (*zoho.WriteResult, error) {
	f.calls = append(f.calls, writeCall{Method: http.MethodPut, CRMID: id, Contact: c})
	return f.answer(ctx, c, http.StatusOK)
}

func (f *fakeCRM) answer(ctx context.Context, c zoho.Contact, okStatus int) (*zoho.WriteResult, error) {
	if f.cancel != nil && len(f.calls) == f.cancelAfter {
		f.cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.writeErr[c.SiigoID]; err != nil {
		return nil, err
	}
	if status, ok := f.failFor[c.SiigoID]; ok {
		return &zoho.WriteResult{StatusCode: status, Body: `{"code":"INVALID_DATA"}`, Status: "error"}, nil
	}
	return &zoho.WriteResult{StatusCode: okStatus, Body: `{"code":"SUCCESS"}`, Status: "success"}, nil
}

// fakeSiigo serves pre-built pages
type fakeSiigo struct {
	authErr  error
	total    int
	pages    [][]siigo.Customer
	countErr error
	pageErr  map[int]error

	fetched []int
	counted int
}

func (f *fakeSiigo) Authenticate(ctx context.Context) (*siigo.Session, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return &siigo.Session{Token: "siigo-token", PartnerID: "partner"}, nil
}

func (f *fakeSiigo) CountCustomers(ctx context.Context, s *siigo.Session, since string) (int, int, error) {
	f.counted++
	if f.countErr != nil {
		return 0, 0, f.countErr
	}
	return f.total, len(f.pages), nil
}

func (f *fakeSiigo) FetchCustomers(ctx context.Context, s *siigo.Session, since string, page int) ([]siigo.Customer, error) {
	f.fetched = append(f.fetched, page)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.pageErr[page]; err != nil {
		return nil, err
	}
	if page < 1 || page > len(f.pages) {
		return nil, errors.New("page out of range")
	}
	return f.pages[page-1], nil
}

func validCustomer(id string) siigo.Customer {
	return siigo.Customer{
		ID:             id,
		Type:           "Customer",
		PersonType:     "Person",
		IDType:         &siigo.IDType{Code: "13", Name: "CC"},
		Identification: "123",
		Active:         true,
		Address: &siigo.Address{
			Address: "Calle 1",
			City: &siigo.City{
				CityName:    "Bogota",
				StateName:   "Bogota",
				CityCode:    "110111",
				CountryName: "Colombia",
			},
		},
		Contacts: []siigo.Contact{{
			FirstName: "Ana",
			LastName:  "",
			Email:     ptr("a@x.com"),
			Phone:     &siigo.Phone{Indicative: "+57", Number: "3001234567"},
		}},
	}
}

func customerPage(prefix string, n int) []siigo.Customer {
	out := make([]siigo.Customer, n)
	for i := range out {
		out[i] = validCustomer(fmt.Sprintf("%s-%d", prefix, i))
	}
	return out
}

func ptr(s string) *string { return &s }
