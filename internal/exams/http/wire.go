package http

import (
	"time"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/pkg/examsdk"
)

// Converters from domain types to their wire shapes. Handlers own this
// mapping so the domain package never grows json tags.

func userInfo(u domain.User) examsdk.UserInfo {
	return examsdk.UserInfo{
		ID:         u.ID,
		Email:      u.Email,
		Role:       string(u.Role),
		MFAEnabled: u.HasMFA(),
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}

func tokenResponse(s domain.Session) examsdk.TokenResponse {
	user := userInfo(s.User)
	return examsdk.TokenResponse{
		AccessToken: s.AccessToken,
		TokenType:   s.TokenType,
		ExpiresIn:   int(s.ExpiresIn.Seconds()),
		User:        &user,
	}
}

func examInfo(e domain.Exam) examsdk.ExamInfo {
	return examsdk.ExamInfo{
		ID:        e.ID,
		Title:     e.Title,
		Date:      e.Date.Format(time.RFC3339),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func assignmentInfo(a domain.Assignment) examsdk.AssignmentInfo {
	info := examsdk.AssignmentInfo{
		UserID:       a.UserID,
		ExamID:       a.ExamID,
		Vote:         a.Vote,
		Grade:        a.LetterGrade(),
		RegisteredAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.GradedAt != nil {
		info.GradedAt = a.GradedAt.Format(time.RFC3339)
	}
	return info
}

func assignmentDetailInfo(d domain.AssignmentDetail) examsdk.AssignmentInfo {
	info := assignmentInfo(d.Assignment)
	info.UserEmail = d.UserEmail
	info.ExamTitle = d.ExamTitle
	info.ExamDate = d.ExamDate.Format(time.RFC3339)
	return info
}

func resultsSummary(s domain.ResultsSummary) examsdk.ResultsSummary {
	return examsdk.ResultsSummary{
		Total:   s.Total,
		Graded:  s.Graded,
		Pending: s.Pending,
		Average: s.Average,
		Best:    s.Best,
	}
}

func signingKeyInfo(k domain.SigningKey) examsdk.SigningKeyInfo {
	info := examsdk.SigningKeyInfo{
		ID:        k.ID,
		Kid:       k.Kid,
		Algorithm: k.Algorithm,
		CreatedAt: k.CreatedAt.Format(time.RFC3339),
	}
	if k.RetiredAt != nil {
		retired := k.RetiredAt.Format(time.RFC3339)
		info.RetiredAt = &retired
	}
	if k.ExpiresAt != nil {
		expires := k.ExpiresAt.Format(time.RFC3339)
		info.ExpiresAt = &expires
	}
	return info
}
