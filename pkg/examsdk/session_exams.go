package examsdk

import (
	"context"
	"fmt"
	"net/http"
)

// RegisterForExam registers the authenticated user for an exam. The server
// always keys the registration on the token subject; there is no way to
// register someone else.
func (s *Session) RegisterForExam(ctx context.Context, examID string) (*RegisterResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/exams/"+examID+"/register", nil, nil)
	if err != nil {
		return nil, err
	}

	var reg RegisterResponse
	if err := decodeJSON(resp, &reg, http.StatusCreated); err != nil {
		return nil, err
	}

	return &reg, nil
}

// MyExams fetches the authenticated user's results, graded and pending,
// with summary statistics.
func (s *Session) MyExams(ctx context.Context) (*MyExamsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me/exams", nil, nil)
	if err != nil {
		return nil, err
	}

	var results MyExamsResponse
	if err := decodeJSON(resp, &results, http.StatusOK); err != nil {
		return nil, err
	}

	return &results, nil
}

// UngradedAssignments lists assignments awaiting a vote (supervisor only).
func (s *Session) UngradedAssignments(ctx context.Context) (*UngradedAssignmentsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/supervisor/ungraded-assignments", nil, nil)
	if err != nil {
		return nil, err
	}

	var ungraded UngradedAssignmentsResponse
	if err := decodeJSON(resp, &ungraded, http.StatusOK); err != nil {
		return nil, err
	}

	return &ungraded, nil
}

// AssignVote grades a user's assignment for an exam (supervisor only).
// Votes are final: grading an already-graded assignment fails with
// ErrAlreadyGraded.
func (s *Session) AssignVote(ctx context.Context, examID, userID string, vote float64) (*AssignmentInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/v1/exams/"+examID+"/vote", AssignVoteRequest{
		UserID: userID,
		Vote:   &vote,
	}, nil)
	if err != nil {
		return nil, err
	}

	var assignment AssignmentInfo
	if err := decodeJSON(resp, &assignment, http.StatusOK); err != nil {
		return nil, err
	}

	return &assignment, nil
}

// CreateExam adds an exam to the catalog (admin only).
func (s *Session) CreateExam(ctx context.Context, req CreateExamRequest) (*ExamInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/exams", req, nil)
	if err != nil {
		return nil, err
	}

	var exam ExamInfo
	if err := decodeJSON(resp, &exam, http.StatusCreated); err != nil {
		return nil, err
	}

	return &exam, nil
}

// DeleteExam removes an exam and its assignments (admin only).
func (s *Session) DeleteExam(ctx context.Context, examID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/exams/"+examID, nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// ExportExamResults downloads an exam's results as an xlsx workbook
// (admin only).
func (s *Session) ExportExamResults(ctx context.Context, examID string) ([]byte, error) {
	path := fmt.Sprintf("/v1/admin/exams/%s/results/export", examID)
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	return readRaw(resp, http.StatusOK)
}
