package sync

import (
	"github.com/xelth-com/siigozoho/internal/apperrors"
	"github.com/xelth-com/siigozoho/internal/services/siigo"
	"github.com/xelth-com/siigozoho/internal/services/zoho"
	"github.com/xelth-com/siigozoho/internal/utils"
)

// Maximum lengths of the Zoho Contacts layout fields
const (
	maxFirstName   = 40
	maxLastName    = 80
	maxTitle       = 100
	maxLongText    = 255 // Full_Name, Description, Nombre_Empresa
	maxEmail       = 100
	maxPhone       = 30
	maxStreet      = 250
	maxPlace       = 100 // city, state, country
	maxZip         = 30
	maxPicklist    = 100 // identification type, type, identification, person type, status
	maxExternalRef = 100
)

// MapCustomer converts a Siigo customer into a Zoho contact. Only the first
// Siigo contact is used. Every string is cut to the CRM field length.
func MapCustomer(c siigo.Customer) (zoho.Contact, error) {
	if len(c.Contacts) == 0 {
		return zoho.Contact{}, &apperrors.MappingError{RecordID: c.ID, Field: "contacts"}
	}
	person := c.Contacts[0]

	switch {
	case person.Email == nil:
		return zoho.Contact{}, &apperrors.MappingError{RecordID: c.ID, Field: "contacts[0].email"}
	case person.Phone == nil:
		return zoho.Contact{}, &apperrors.MappingError{RecordID: c.ID, Field: "contacts[0].phone"}
	case c.Address == nil:
		return zoho.Contact{}, &apperrors.MappingError{RecordID: c.ID, Field: "address"}
	case c.Address.City == nil:
		return zoho.Contact{}, &apperrors.MappingError{RecordID: c.ID, Field: "address.city"}
	case c.IDType == nil:
		return zoho.Contact{}, &apperrors.MappingError{RecordID: c.ID, Field: "id_type"}
	}

	firstName := utils.Truncate(person.FirstName, maxFirstName)
	lastName := utils.Truncate(person.LastName, maxLastName)

	fullName := firstName
	if lastName != "" {
		fullName = firstName + " " + lastName
	} else {
		// Last_Name is mandatory in Zoho
		lastName = firstName
	}
	fullName = utils.Truncate(fullName, maxLongText)

	phone := utils.Truncate(person.Phone.Number, maxPhone)
	city := c.Address.City

	return zoho.Contact{
		FirstName:          firstName,
		LastName:           lastName,
		Email:              utils.Truncate(*person.Email, maxEmail),
		Title:              utils.Truncate(fullName, maxTitle),
		PhoneIndicative:    utils.Truncate(person.Phone.Indicative, maxPhone),
		Phone:              phone,
		HomePhone:          phone,
		OtherPhone:         phone,
		Mobile:             phone,
		AsstPhone:          phone,
		FullName:           fullName,
		MailingStreet:      utils.Truncate(c.Address.Address, maxStreet),
		MailingCity:        utils.Truncate(city.CityName, maxPlace),
		MailingState:       utils.Truncate(city.StateName, maxPlace),
		MailingZip:         utils.Truncate(city.CityCode, maxZip),
		MailingCountry:     utils.Truncate(city.CountryName, maxPlace),
		Description:        fullName,
		IdentificationType: utils.Truncate(c.IDType.Name, maxPicklist),
		CustomerType:       utils.Truncate(c.Type, maxPicklist),
		Identification:     utils.Truncate(c.Identification, maxPicklist),
		PersonType:         utils.Truncate(c.PersonType, maxPicklist),
		SiigoID:            utils.Truncate(c.ID, maxExternalRef),
		CompanyName:        fullName,
		Status:             activeLabel(c.Active),
	}, nil
}

// activeLabel matches the picklist values already stored in the CRM
func activeLabel(active bool) string {
	if active {
		return "True"
	}
	return "False"
}
