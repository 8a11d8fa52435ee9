package domain

import "time"

// DonationType is a kind of donation a center or slot supports.
type DonationType string

const (
	DonationBlood     DonationType = "BLOOD"
	DonationPlasma    DonationType = "PLASMA"
	DonationPlatelets DonationType = "PLATELETS"
	DonationOrgan     DonationType = "ORGAN"
	DonationTissue    DonationType = "TISSUE"
)

// Valid reports whether t is one of the known donation types.
func (t DonationType) Valid() bool {
	switch t {
	case DonationBlood, DonationPlasma, DonationPlatelets, DonationOrgan, DonationTissue:
		return true
	}
	return false
}

// Manager is the credential-free identity of a user in a center's manager
// set: id and names only, never email or credentials.
type Manager struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DonationCenter is a physical donation location. The manager set is never
// empty immediately after creation: the creator is always attached.
type DonationCenter struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Address        string         `json:"address"`
	ContactNumber  string         `json:"contactNumber"`
	Email          *string        `json:"email,omitempty"`
	Description    *string        `json:"description,omitempty"`
	OperatingHours *string        `json:"operatingHours,omitempty"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	SpecializedIn  []DonationType `json:"specializedIn"`
	Managers       []Manager      `json:"managers,omitempty"`
	SlotCount      int            `json:"slotCount"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// CreateCenterRequest carries the validated fields for a new center.
type CreateCenterRequest struct {
	Name           string
	Address        string
	ContactNumber  string
	Email          *string
	Description    *string
	OperatingHours *string
	Latitude       float64
	Longitude      float64
	SpecializedIn  []DonationType
}

// UpdateCenterRequest is a patch: nil fields are left untouched.
type UpdateCenterRequest struct {
	Name           *string
	Address        *string
	ContactNumber  *string
	Email          *string
	Description    *string
	OperatingHours *string
	Latitude       *float64
	Longitude      *float64
	SpecializedIn  []DonationType
}

// CenterPage is one page of centers plus the pagination bookkeeping.
// LastPage is ceil(total/limit), 0 when there are no records at all.
type CenterPage struct {
	Centers  []DonationCenter `json:"centers"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	LastPage int              `json:"lastPage"`
}
