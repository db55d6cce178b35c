package examsdk

import (
	"context"
	"net/http"
)

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetReadiness checks if the service is ready to accept traffic.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetJWKS fetches the public JWT verification keys.
func (c *SDKClient) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/jwks.json", nil, nil)
	if err != nil {
		return nil, err
	}

	var jwks JWKSResponse
	if err := decodeJSON(resp, &jwks, http.StatusOK); err != nil {
		return nil, err
	}

	return &jwks, nil
}

// ListExams fetches the public exam catalog.
func (c *SDKClient) ListExams(ctx context.Context) (*ListExamsResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/exams", nil, nil)
	if err != nil {
		return nil, err
	}

	var exams ListExamsResponse
	if err := decodeJSON(resp, &exams, http.StatusOK); err != nil {
		return nil, err
	}

	return &exams, nil
}

// GetExam fetches one exam with its public statistics.
func (c *SDKClient) GetExam(ctx context.Context, examID string) (*ExamInfo, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/exams/"+examID, nil, nil)
	if err != nil {
		return nil, err
	}

	var exam ExamInfo
	if err := decodeJSON(resp, &exam, http.StatusOK); err != nil {
		return nil, err
	}

	return &exam, nil
}

// GetBootstrapStatus reports whether the service has been seeded.
func (c *SDKClient) GetBootstrapStatus(ctx context.Context) (*BootstrapStatusResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/bootstrap", nil, nil)
	if err != nil {
		return nil, err
	}

	var status BootstrapStatusResponse
	if err := decodeJSON(resp, &status, http.StatusOK); err != nil {
		return nil, err
	}

	return &status, nil
}

// Bootstrap performs the one-time seeding of the first admin (and optional
// supervisor) account. The bootstrap token must match the server's
// BOOTSTRAP_TOKEN.
func (c *SDKClient) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*BootstrapResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/bootstrap", req, map[string]string{
		"X-Bootstrap-Token": token,
	})
	if err != nil {
		return nil, err
	}

	var bootstrap BootstrapResponse
	if err := decodeJSON(resp, &bootstrap, http.StatusCreated); err != nil {
		return nil, err
	}

	return &bootstrap, nil
}
