package services

import (
	"fmt"

	"societyportal/internal/pdf"
)

const rosterPageSize = 1000

type ReportService struct {
	Users  UserService
	PDFGen pdf.Generator
}

func NewReportService(users UserService, gen pdf.Generator) *ReportService {
	return &ReportService{Users: users, PDFGen: gen}
}

// MemberRosterPDF renders the full roster and returns the file path.
func (s *ReportService) MemberRosterPDF() (string, error) {
	members, err := s.Users.ListUsers(rosterPageSize, 0)
	if err != nil {
		return "", fmt.Errorf("roster list users: %w", err)
	}
	return s.PDFGen.GenerateRoster(members)
}
