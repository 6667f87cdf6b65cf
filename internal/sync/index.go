package sync

import "github.com/xelth-com/siigozoho/internal/services/zoho"

// ContactIndex maps a SiigoID to the CRM contact carrying it
type ContactIndex map[string]zoho.ContactRef

// IndexBySiigoID builds the lookup index from a full CRM listing. Contacts
// without a SiigoID share the empty key. A later contact with the same
// SiigoID replaces the earlier one.
//
// The index is a snapshot: contacts created or updated during the run are
// not added to it, so a SiigoID seen twice in one run is created twice.
func IndexBySiigoID(contacts []zoho.ContactRef) ContactIndex {
	index := make(ContactIndex, len(contacts))
	for _, c := range contacts {
		index[c.SiigoID] = c
	}
	return index
}

// Lookup finds the CRM contact for a SiigoID. The empty id never matches.
func (idx ContactIndex) Lookup(siigoID string) (zoho.ContactRef, bool) {
	if siigoID == "" {
		return zoho.ContactRef{}, false
	}
	c, ok := idx[siigoID]
	return c, ok
}
