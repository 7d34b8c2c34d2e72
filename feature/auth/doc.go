// Package auth implements member authentication.
//
// Members register with name/email/password, log in for a JWT bearer token
// and can inspect themselves, refresh the token or log out. Passwords are
// bcrypt-hashed; tokens are stateless, so logout only stamps the member's
// login log rather than revoking the token.
//
// # Components
//
//   - Service: registration, login (with login-log upsert), me/logout/refresh.
//   - Repository: GORM persistence for members and their login logs.
//   - Handler: HTTP endpoints under /auth; register and login are public,
//     everything else requires the JWT guard.
//   - Loader: registers the feature with the application.
package auth
