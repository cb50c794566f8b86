package handler

const (
	errInternalServer      = "Internal server error"
	errEmailRegistered     = "Email already registered"
	errInvalidCredentials  = "Incorrect email or password"
	errEmailNotVerified    = "Email not verified"
	errTokenInvalid        = "Invalid or expired token"
	errResetTokenInvalid   = "Invalid or expired reset token"
	errIncorrectPassword   = "Incorrect current password"
	errTransactionNotFound = "Transaction not found"
	errCategoryNotFound    = "Category not found"
)
