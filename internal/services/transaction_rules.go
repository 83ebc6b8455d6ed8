package services

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"

	"homebudget/internal/models"
)

// ImportHash is the deduplication key of a transaction without an explicit
// one: the hex SHA-256 of "date|amount|description".
func ImportHash(date models.Date, amount decimal.Decimal, description string) string {
	sum := sha256.Sum256([]byte(string(date) + "|" + amount.String() + "|" + description))
	return hex.EncodeToString(sum[:])
}

// ShouldRejectAIUpdate reports whether an update touching ai_status or
// ai_confidence must be refused because it does not set the manual override.
func ShouldRejectAIUpdate(isManualOverride *bool, touchesAI bool) bool {
	return touchesAI && (isManualOverride == nil || !*isManualOverride)
}

// resolveImportHash returns the explicit hash when present, else the content hash.
func resolveImportHash(in CreateTransactionInput) string {
	if in.ImportHash != nil {
		if h := strings.TrimSpace(*in.ImportHash); h != "" {
			return h
		}
	}
	return ImportHash(in.Date, in.Amount, in.Description)
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.TypeID == nil && p.Amount == nil && p.Description == nil && p.Date == nil &&
		p.IsManualOverride == nil && !p.SetAIStatus && !p.SetAIConfidence && !p.SetImportHash
}

// TouchesAI reports whether the patch names an AI-derived field.
func (p TransactionPatch) TouchesAI() bool {
	return p.SetAIStatus || p.SetAIConfidence
}

func (p TransactionPatch) updates() map[string]any {
	u := map[string]any{}
	if p.TypeID != nil {
		u["type_id"] = *p.TypeID
	}
	if p.Amount != nil {
		u["amount"] = *p.Amount
	}
	if p.Description != nil {
		u["description"] = strings.TrimSpace(*p.Description)
	}
	if p.Date != nil {
		u["date"] = *p.Date
	}
	if p.IsManualOverride != nil {
		u["is_manual_override"] = *p.IsManualOverride
	}
	if p.SetAIStatus {
		u["ai_status"] = p.AIStatus
	}
	if p.SetAIConfidence {
		u["ai_confidence"] = p.AIConfidence
	}
	if p.SetImportHash {
		u["import_hash"] = p.ImportHash
	}
	return u
}

func (in ReplaceTransactionInput) updates() map[string]any {
	override := false
	if in.IsManualOverride != nil {
		override = *in.IsManualOverride
	}
	return map[string]any{
		"type_id":            in.TypeID,
		"amount":             in.Amount,
		"description":        strings.TrimSpace(in.Description),
		"date":               in.Date,
		"is_manual_override": override,
		"ai_status":          in.AIStatus,
		"ai_confidence":      in.AIConfidence,
		"import_hash":        in.ImportHash,
	}
}
