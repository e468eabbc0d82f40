package errors

const (
	UnauthorizedAccess        = "unauthorized access"
	BadAccess                 = "Bad Access"
	DatabaseError             = "Error in database"
	InvalidRequestFormatError = "Invalid request format"
	InvalidPriceError         = "Price must be a positive number"
	PaymentProviderError      = "Error creating payment intent"
	NotFoundError             = "Not found"
)
