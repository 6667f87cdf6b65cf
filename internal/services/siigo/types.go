package siigo

// Customer represents a customer record from the Siigo customers API
type Customer struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`        // Customer, Supplier, Other
	PersonType     string    `json:"person_type"` // Person or Company
	IDType         *IDType   `json:"id_type"`
	Identification string    `json:"identification"`
	Name           []string  `json:"name"`
	Active         bool      `json:"active"`
	Address        *Address  `json:"address"`
	Contacts       []Contact `json:"contacts"`
}

// IDType is the identification document type (e.g. "13" Cédula de ciudadanía)
type IDType struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Contact is one of the customer's contact people
type Contact struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"` // nil when the key is absent
	Phone     *Phone  `json:"phone"`
}

// Phone is the single phone block Siigo keeps per contact
type Phone struct {
	Indicative string `json:"indicative"`
	Number     string `json:"number"`
	Extension  string `json:"extension"`
}

// Address is the customer's fiscal address
type Address struct {
	Address    string `json:"address"`
	City       *City  `json:"city"`
	PostalCode string `json:"postal_code"`
}

// City carries the DANE location codes and names
type City struct {
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	StateCode   string `json:"state_code"`
	StateName   string `json:"state_name"`
	CityCode    string `json:"city_code"`
	CityName    string `json:"city_name"`
}

// Pagination is the paging block of list responses
type Pagination struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalResults int `json:"total_results"`
}

// CustomerPage is one page of the customers list
type CustomerPage struct {
	Pagination Pagination `json:"pagination"`
	Results    []Customer `json:"results"`
}

type authRequest struct {
	Username  string `json:"username"`
	AccessKey string `json:"access_key"`
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}
