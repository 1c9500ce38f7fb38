package account

import "github.com/rushteam/movietrack/core"

// 账户领域错误。Message 直接展示给用户。
var (
	ErrEmptyUsername      = core.NewDomainError(core.ModuleAccount, core.ErrorCodeInvalidInput, "Username cannot be empty.")
	ErrUsernameTaken      = core.NewDomainError(core.ModuleAccount, core.ErrorCodeConflict, "Username already exists.")
	ErrPasswordLength     = core.NewDomainError(core.ModuleAccount, core.ErrorCodeInvalidInput, "Password length must be between 5 and 14 characters.")
	ErrPasswordMismatch   = core.NewDomainError(core.ModuleAccount, core.ErrorCodeInvalidInput, "Passwords do not match.")
	ErrUserNotFound       = core.NewDomainError(core.ModuleAccount, core.ErrorCodeNotFound, "User not found.")
	ErrWrongPassword      = core.NewDomainError(core.ModuleAccount, core.ErrorCodeUnauthorized, "Wrong password.")
	ErrCurrentPassword    = core.NewDomainError(core.ModuleAccount, core.ErrorCodeUnauthorized, "Current password incorrect.")
	ErrMovieNotFound      = core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound, "Movie not found.")
	ErrAlreadyInWatchlist = core.NewDomainError(core.ModuleAccount, core.ErrorCodeConflict, "Movie is already in your watchlist.")
	ErrNotInWatchlist     = core.NewDomainError(core.ModuleAccount, core.ErrorCodeNotFound, "That movie is not in your watchlist.")
	ErrWatchlistEmpty     = core.NewDomainError(core.ModuleAccount, core.ErrorCodeNotFound, "Watchlist is empty.")
)
