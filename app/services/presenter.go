package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/center-locator/app/models"
	"github.com/center-locator/internal/resolver"
)

// Các câu trả lời cố định
const (
	MessageNoMatch        = "I couldn't find a center matching your description."
	MessageUnderspecified = "Please specify a center name, city, or province."
	MessageUnavailable    = "Sorry, I couldn't get the data."

	messageClarification = "I found multiple centers matching your query. Please specify which one you're referring to:<br><br>"
)

// Present render MatchResult thành câu trả lời cho chat
func Present(result resolver.MatchResult, catalogVersion string) *models.ChatAnswer {
	answer := &models.ChatAnswer{
		Outcome: string(result.Outcome),
		Intent: models.IntentFlags{
			WantsID:          result.Intent.WantsID,
			WantsCode:        result.Intent.WantsCode,
			WantsMachineInfo: result.Intent.WantsMachineInfo,
		},
		Centers:        make([]models.CenterView, 0, len(result.Candidates)),
		CatalogVersion: catalogVersion,
		AnsweredAt:     time.Now().UTC(),
	}

	for _, cand := range result.Candidates {
		answer.Centers = append(answer.Centers, centerView(cand, result.Intent))
	}

	switch result.Outcome {
	case resolver.OutcomeSingle:
		answer.Message = renderSingle(result.Candidates[0].Record, result.Intent)
	case resolver.OutcomeClarification:
		answer.Message = renderClarification(result.Candidates, result.Intent)
	case resolver.OutcomeUnderspecified:
		answer.Message = MessageUnderspecified
	case resolver.OutcomeUnavailable:
		answer.Message = MessageUnavailable
	default:
		answer.Message = MessageNoMatch
	}
	return answer
}

func centerView(cand resolver.MatchCandidate, intent resolver.Intent) models.CenterView {
	rec := cand.Record
	view := models.CenterView{
		Name:     rec.Name,
		City:     rec.City,
		Province: rec.Province,
		Address:  rec.Address,
		Score:    cand.Score,
	}
	if intent.ShowID() {
		view.ID = rec.ID
	}
	if intent.ShowCode() {
		view.Code = rec.Code
	}
	return view
}

func renderSingle(rec *resolver.CenterRecord, intent resolver.Intent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I believe you're referring to **%s** in %s.<br>", rec.Name, rec.City)
	if intent.ShowID() {
		fmt.Fprintf(&b, "Center ID: %s<br>", rec.ID)
	}
	if intent.ShowCode() {
		fmt.Fprintf(&b, "Code: %s<br>", rec.Code)
	}
	fmt.Fprintf(&b, "Location: %s", rec.Address)
	return b.String()
}

func renderClarification(candidates []resolver.MatchCandidate, intent resolver.Intent) string {
	var b strings.Builder
	b.WriteString(messageClarification)
	for i, cand := range candidates {
		rec := cand.Record
		fmt.Fprintf(&b, "%d. **%s** - %s, %s, %s<br>", i+1, rec.Name, rec.Address, rec.City, rec.Province)

		var idents []string
		if intent.ShowID() {
			idents = append(idents, "Center ID: "+rec.ID)
		}
		if intent.ShowCode() {
			idents = append(idents, "Code: "+rec.Code)
		}
		fmt.Fprintf(&b, "   %s<br><br>", strings.Join(idents, ", "))
	}
	return b.String()
}
