package model

// ScamCategory is the coarse classification of an attack, used to select
// engagement templates.
type ScamCategory string

const (
	CategoryNone          ScamCategory = "none"
	CategoryPaymentThreat ScamCategory = "payment_threat"
	CategoryOTPPhishing   ScamCategory = "otp_phishing"
	CategoryGeneric       ScamCategory = "generic"
)
