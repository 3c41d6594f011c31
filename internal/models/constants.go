package models

// Sentinel category values the backend stores verbatim.
const (
	CategoryTransfer = "Transferencia interna"
	CategoryMultiple = "Múltiples categorías"
)

// Portfolio operation directions
const (
	DirectionBuy  = "Compra"
	DirectionSell = "Venta"
)

// DateFormat is the wire format for all dates exchanged with the backend.
const DateFormat = "2006-01-02"

// Keywords matched against the normalized transaction-type label to derive
// which optional fields a type requires.
const (
	KeywordGoal      = "ahorro"
	KeywordDebt      = "deuda"
	KeywordTransfer  = "transferencia"
	KeywordPortfolio = "portafolio"
)

// Advisory messages for requirements the user cannot satisfy yet
const (
	AdvisoryNoGoals = "necesitas crear una meta primero"
	AdvisoryNoDebts = "necesitas crear una deuda primero"
)
