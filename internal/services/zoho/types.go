package zoho

import "encoding/json"

// Contact is a record of the Zoho CRM Contacts module, limited to the fields
// the sync reads or writes. ID is the CRM-internal id and is only set on
// records read back from the CRM.
type Contact struct {
	ID                 string `json:"id,omitempty"`
	FirstName          string `json:"First_Name"`
	LastName           string `json:"Last_Name"`
	Email              string `json:"Email"`
	Title              string `json:"Title"`
	PhoneIndicative    string `json:"Indicativo_telefono"`
	Phone              string `json:"Phone"`
	HomePhone          string `json:"Home_Phone"`
	OtherPhone         string `json:"Other_Phone"`
	Mobile             string `json:"Mobile"`
	AsstPhone          string `json:"Asst_Phone"`
	FullName           string `json:"Full_Name"`
	MailingStreet      string `json:"Mailing_Street"`
	MailingCity        string `json:"Mailing_City"`
	MailingState       string `json:"Mailing_State"`
	MailingZip         string `json:"Mailing_Zip"`
	MailingCountry     string `json:"Mailing_Country"`
	Description        string `json:"Description"`
	IdentificationType string `json:"Tipo_identificacion"`
	CustomerType       string `json:"Tipo"`
	Identification     string `json:"Tdentificacion"` // API name as defined in the CRM layout
	PersonType         string `json:"Tipo_Persona"`
	SiigoID            string `json:"SiigoID"`
	CompanyName        string `json:"Nombre_Empresa"`
	Status             string `json:"Estado"`
}

// ContactRef is the part of a listed CRM contact the sync matches on. Other
// fields of the listing are not decoded, so custom layout fields of any type
// cannot break the listing.
type ContactRef struct {
	ID      string `json:"id"`
	SiigoID string `json:"SiigoID"`
}

// User is an entry of the Zoho users API
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Status   string `json:"status"`
}

// WriteResult is the outcome of a create or update call. Code and Status
// come from the first per-record entry when the body could be parsed.
type WriteResult struct {
	StatusCode int
	Body       string
	Code       string // e.g. SUCCESS, DUPLICATE_DATA, INVALID_DATA
	Status     string // "success" or "error"
}

// Failed reports whether the CRM rejected the write
func (r *WriteResult) Failed() bool {
	return r.StatusCode >= 400 || r.Status == "error"
}

type recordsEnvelope struct {
	Data []Contact `json:"data"`
}

type listEnvelope struct {
	Data []json.RawMessage `json:"data"`
	Info *PageInfo         `json:"info"`
}

// PageInfo is the paging block of Zoho list responses
type PageInfo struct {
	PerPage     int  `json:"per_page"`
	Count       int  `json:"count"`
	Page        int  `json:"page"`
	MoreRecords bool `json:"more_records"`
}

type usersEnvelope struct {
	Users []User `json:"users"`
}

// ResponseItem is one per-record entry of a Zoho write response
type ResponseItem struct {
	Status  string          `json:"status,omitempty"`
	Message string          `json:"message,omitempty"`
	Code    string          `json:"code,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

// APIResponse is the envelope Zoho answers writes with
type APIResponse struct {
	Data []ResponseItem `json:"data"`
}
