// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Storefront
	KeyStorefrontUpdated  = "storefront.updated"
	KeyStorefrontSaved    = "storefront.saved"
	KeyStorefrontNotFound = "storefront.not_found"
	KeyStorefrontDraft    = "storefront.draft_buffered"

	// Products (embedded in the storefront aggregate)
	KeyProductAdded   = "product.added"
	KeyProductUpdated = "product.updated"
	KeyProductRemoved = "product.removed"

	// Pages / components
	KeyPageCreated         = "page.created"
	KeyPageUpdated         = "page.updated"
	KeyPageNotFound        = "page.not_found"
	KeyComponentAdded      = "component.added"
	KeyComponentUpdated    = "component.updated"
	KeyComponentRemoved    = "component.removed"
	KeyComponentNotFound   = "component.not_found"
	KeyComponentBadConfig  = "component.config_mismatch"
	KeyComponentsReordered = "component.reordered"

	// Billing
	KeyBillingCheckoutCreated = "billing.checkout_created"
	KeyBillingSessionNotFound = "billing.session_not_found"
	KeyBillingUpgraded        = "billing.upgraded"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)
