/*
Package examsdk provides a client SDK for the exams service.

# Overview

The package is organized around two main types:

  - SDKClient: unauthenticated operations (health, catalog, login, bootstrap)
  - Session: authenticated operations with automatic token refresh

Create an SDKClient to reach public endpoints and initiate authentication:

	client := examsdk.NewSDKClient("https://exams.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Seed the first admin account (one-time setup)
	seeded, err := client.Bootstrap(ctx, token, req)

	// Authenticate to create a session
	session, err := client.Login(ctx, "student@example.com", "password")

Use the Session for everything requiring a bearer token:

	// Register for an exam (user role)
	reg, err := session.RegisterForExam(ctx, examID)

	// Grade an assignment (supervisor role)
	graded, err := session.AssignVote(ctx, examID, userID, 77)

	// Read your results (user role)
	results, err := session.MyExams(ctx)

# Automatic Token Refresh

Access tokens are short-lived and refresh requires a still-valid token, so
the Session renews its token 30 seconds before expiry. Every Session method
goes through this check; manual refresh is never required, though
Session.Refresh is available.

# MFA

Accounts with TOTP enabled answer login with *MFARequiredError instead of a
token:

	session, err := client.Login(ctx, email, password)
	var mfaErr *examsdk.MFARequiredError
	if errors.As(err, &mfaErr) {
		session, err = client.VerifyMFA(ctx, mfaErr.MFAToken, totpCode)
	}

# Error Handling

Error responses parse into *APIError values whose Code matches the server's
taxonomy. APIError implements errors.Is against the predefined values:

	_, err := session.AssignVote(ctx, examID, userID, 90)
	switch {
	case errors.Is(err, examsdk.ErrAlreadyGraded):
		// vote is final
	case errors.Is(err, examsdk.ErrForbidden):
		// caller is not a supervisor
	}

# Thread Safety

Sessions are safe for concurrent use; token refresh is guarded by a lock
with a double-check so concurrent callers trigger at most one refresh.
*/
package examsdk
