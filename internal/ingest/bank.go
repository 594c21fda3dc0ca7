package ingest

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"socialsupport-backend/internal/records"
)

// parseBankTable converts a tabular bank statement extract into ledger rows.
// The header row is resolved fuzzily: date must match exactly, the rest by
// substring. The signed amount is the credit value when positive, otherwise
// the negated debit value when positive, otherwise null. Malformed numerics
// degrade to null fields; the row is still inserted.
func parseBankTable(docID int64, rows [][]string) ([]records.BankTransaction, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	resolver := newColumnResolver(rows[0])

	dateIdx, err := resolver.requireExact("date", "date")
	if err != nil {
		return nil, err
	}
	descIdx, err := resolver.requireContains("description", "desc")
	if err != nil {
		return nil, err
	}
	debitIdx, err := resolver.requireContains("debit", "debit")
	if err != nil {
		return nil, err
	}
	creditIdx, err := resolver.requireContains("credit", "credit")
	if err != nil {
		return nil, err
	}
	balanceIdx, hasBalance := resolver.contains("balance")

	var txns []records.BankTransaction
	for _, row := range rows[1:] {
		txn := records.BankTransaction{
			DocID:       docID,
			TxnDate:     parseDate(cell(row, dateIdx)),
			Description: strings.TrimSpace(cell(row, descIdx)),
			Amount:      signedAmount(parseAmount(cell(row, creditIdx)), parseAmount(cell(row, debitIdx))),
		}
		if hasBalance {
			txn.BalanceAfter = parseAmount(cell(row, balanceIdx))
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// signedAmount decides the net transaction amount: the credit value when
// positive, else the negated debit value when positive, else null.
func signedAmount(credit, debit decimal.NullDecimal) decimal.NullDecimal {
	if credit.Valid && credit.Decimal.IsPositive() {
		return credit
	}
	if debit.Valid && debit.Decimal.IsPositive() {
		return decimal.NullDecimal{Decimal: debit.Decimal.Neg(), Valid: true}
	}
	return decimal.NullDecimal{}
}

// bankLineRe matches one free-text statement line: a DD/MM/YYYY date, a
// non-greedy description, two decimal values (comma thousands allowed) and
// an optional trailing balance.
var bankLineRe = regexp.MustCompile(
	`^(\d{2}/\d{2}/\d{4})\s+` + // date
		`(.*?)\s+` + // description, non-greedy
		`(-?[\d,]+\.\d{2})\s+` + // first value
		`(-?[\d,]+\.\d{2})` + // second value
		`(?:\s+(-?[\d,]+\.\d{2}))?$`) // optional balance

const bankTextDateLayout = "02/01/2006"

// parseBankText scans a free-text statement dump line by line. Lines that do
// not match the pattern (headers, footers, noise) are skipped silently.
//
// When both captured values are positive the smaller one is taken as the
// transaction amount and the larger discarded as an incidental figure. This
// is a quirk of the statement format this pipeline inherits, kept as-is
// rather than generalized.
func parseBankText(docID int64, text string) []records.BankTransaction {
	var txns []records.BankTransaction
	for _, line := range strings.Split(text, "\n") {
		m := bankLineRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}

		txn := records.BankTransaction{
			DocID:       docID,
			Description: strings.TrimSpace(m[2]),
		}
		if t, err := time.Parse(bankTextDateLayout, m[1]); err == nil {
			txn.TxnDate = &t
		}

		v1 := parseAmount(m[3])
		v2 := parseAmount(m[4])
		txn.Amount = textLineAmount(v1, v2)
		if m[5] != "" {
			txn.BalanceAfter = parseAmount(m[5])
		}
		txns = append(txns, txn)
	}
	return txns
}

// textLineAmount applies the smaller-of-two-positives rule: both positive
// takes the smaller, exactly one positive takes that one, neither positive
// yields zero.
func textLineAmount(v1, v2 decimal.NullDecimal) decimal.NullDecimal {
	a := decimal.Zero
	if v1.Valid {
		a = v1.Decimal
	}
	b := decimal.Zero
	if v2.Valid {
		b = v2.Decimal
	}

	var amount decimal.Decimal
	switch {
	case a.IsPositive() && b.IsPositive():
		amount = decimal.Min(a, b)
	case a.IsPositive():
		amount = a
	case b.IsPositive():
		amount = b
	default:
		amount = decimal.Zero
	}
	return decimal.NullDecimal{Decimal: amount, Valid: true}
}
