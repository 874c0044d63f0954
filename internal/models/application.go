package models

import "io"

// ApplicationFields holds the user-entered intake form values. Every
// field except the ID images is required; whitespace-only answers count
// as missing. Field names mirror the upstream form contract.
type ApplicationFields struct {
	Email              string `json:"email" form:"email" validate:"notblank"`
	PhoneNo            string `json:"phoneNo" form:"phoneNo" validate:"notblank"`
	AdopterName        string `json:"adopterName" form:"adopterName" validate:"notblank"`
	Address            string `json:"address" form:"address" validate:"notblank"`
	LivingSituation    string `json:"livingSituation" form:"livingSituation" validate:"notblank"`
	PreviousExperience string `json:"previousExperience" form:"previousExperience" validate:"notblank"`
	FamilyComposition  string `json:"familyComposition" form:"familyComposition" validate:"notblank"`
	ContactReference   string `json:"contactReference" form:"contactReference" validate:"notblank"`
	Occupation         string `json:"occupation" form:"occupation" validate:"notblank"`
	Renting            string `json:"renting" form:"renting" validate:"notblank"`
	FamilyAllergic     string `json:"familyAllergic" form:"familyAllergic" validate:"notblank"`
	Neutering          string `json:"neutering" form:"neutering" validate:"notblank"`
}

// ImageAttachment is an uploaded identity document forwarded to the
// upstream form endpoint. At most two are accepted per application.
type ImageAttachment struct {
	FieldName string
	Filename  string
	MimeType  string
	Content   io.Reader
}

// AdoptionApplication ties intake fields to the listing they target.
// Applications are immutable once created; the moderation cascade
// deletes them wholesale when their listing is rejected.
type AdoptionApplication struct {
	ID        string `json:"_id,omitempty"`
	ListingID string `json:"dogId"`
	ApplicationFields
}
