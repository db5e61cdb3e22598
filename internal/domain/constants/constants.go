package constants

import "time"

// Ledger konstantalari
const (
	// DefaultLocation har bir narx yozuviga qo'yiladigan joy
	DefaultLocation = "Japan Auction"

	// DefaultMirrorTimeout webhook mirror uchun maksimal kutish
	DefaultMirrorTimeout = 5 * time.Second
)

// Interaction konstantalari
const (
	// AddPriceCallbackPrefix inline "add price" tugmasi payload prefiksi
	AddPriceCallbackPrefix = "addprice|"

	// MaxCallbackDataBytes Telegram callback_data limiti
	MaxCallbackDataBytes = 64

	// MaxModelResults /model javobida ko'rsatiladigan max mashinalar
	MaxModelResults = 20

	// MinBundledPriceDigits caption ichidagi narx uchun min raqamlar soni
	MinBundledPriceDigits = 4

	// MaxBundledPriceDigits caption ichidagi narx uchun max raqamlar soni
	MaxBundledPriceDigits = 6
)

// Session konstantalari
const (
	// PendingSweepInterval pending yozuvlarni tozalash oralig'i
	PendingSweepInterval = time.Minute
)
