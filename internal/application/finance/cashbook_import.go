package finance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/garments-erp/backend/internal/domain/partner"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/garments-erp/backend/internal/infrastructure/csvimport"
	"github.com/garments-erp/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Cash book sheet layout: the credit ledger on the left, the debit ledger on the right
const (
	colCreditDate = iota
	colCreditCategory
	colCreditParticulars
	colCreditAmount
	colDebitDate
	colDebitCategory
	colSupplier
	colBuyer
	colDebitParticulars
	colDebitAmount
)

const (
	creditDateLayout = "02-01-2006"
	debitDateLayout  = "02-01-06"
)

var (
	ErrImportFileInvalid = shared.NewDomainError("INVALID_IMPORT_FILE", "File is not a readable cash book CSV")
	ErrImportHeader      = shared.NewDomainError("INVALID_IMPORT_FILE", "Cash book header with Date, Categories and Amount columns not found")
	ErrImportEmpty       = shared.NewDomainError("INVALID_IMPORT_FILE", "File contains no cash book transactions")
	ErrImportNoRows      = shared.NewDomainError("INVALID_IMPORT_REQUEST", "At least one transaction is required")
)

// CashRecorder saves one-sided cash book records
type CashRecorder interface {
	SaveCredit(ctx context.Context, in CashTransactionInput) (*CashTransactionDTO, error)
	SaveDebit(ctx context.Context, in CashTransactionInput) (*CashTransactionDTO, error)
}

// ContactEnsurer creates the buyers and suppliers a cash book names on first sight
type ContactEnsurer interface {
	EnsureContact(ctx context.Context, name string, contactType partner.ContactType) (bool, error)
}

// ImportTransaction is one side of a cash book row
type ImportTransaction struct {
	Row         int             `json:"row,omitempty"`
	Direction   string          `json:"direction"` // Credit or Debit
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Particulars string          `json:"particulars"`
	Amount      decimal.Decimal `json:"amount"`
	Supplier    string          `json:"supplier,omitempty"`
	Buyer       string          `json:"buyer,omitempty"`
}

// TrialBalanceTotals are the closing figures of the source cash book
type TrialBalanceTotals struct {
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	CashInHand    decimal.Decimal `json:"cash_in_hand"`
	AsOfDate      *time.Time      `json:"as_of_date,omitempty"`
}

// CashBookImportRequest is a parsed cash book ready to be booked
type CashBookImportRequest struct {
	Transactions []ImportTransaction
	Suppliers    []string
	Buyers       []string
	TrialBalance *TrialBalanceTotals
	UserID       uuid.UUID
}

// CashBookImportResult reports what an import booked and which rows it refused
type CashBookImportResult struct {
	IsSuccess             bool                 `json:"is_success"`
	Message               string               `json:"message"`
	AccountsCreated       int                  `json:"accounts_created"`
	ContactsCreated       int                  `json:"contacts_created"`
	TransactionsImported  int                  `json:"transactions_imported"`
	TotalReceived         decimal.Decimal      `json:"total_received"`
	TotalExpenses         decimal.Decimal      `json:"total_expenses"`
	TrialBalanceValidated bool                 `json:"trial_balance_validated"`
	Errors                []csvimport.RowError `json:"errors"`
	TotalErrors           int                  `json:"total_errors"`
	IsTruncated           bool                 `json:"is_truncated,omitempty"`
}

// CashBookImportService books spreadsheet cash books through the cash book.
// Rows are saved one at a time; a refused row is reported and the rest still import.
type CashBookImportService struct {
	cash     CashRecorder
	contacts ContactEnsurer
	metrics  *telemetry.Metrics
	logger   *zap.Logger
}

// NewCashBookImportService creates a new CashBookImportService. contacts may be nil.
func NewCashBookImportService(cash CashRecorder, contacts ContactEnsurer, metrics *telemetry.Metrics, logger *zap.Logger) *CashBookImportService {
	return &CashBookImportService{cash: cash, contacts: contacts, metrics: metrics, logger: logger}
}

// ImportCSV parses a cash book sheet and books every row after the header
func (s *CashBookImportService) ImportCSV(ctx context.Context, r io.Reader, userID uuid.UUID) (*CashBookImportResult, error) {
	reader, err := csvimport.NewReader(r)
	if err != nil {
		if errors.Is(err, csvimport.ErrEmptyFile) {
			return nil, ErrImportEmpty
		}
		return nil, ErrImportFileInvalid
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, ErrImportFileInvalid
	}
	header := csvimport.FindHeader(records, isCashBookHeader)
	if header < 0 {
		return nil, ErrImportHeader
	}

	errs := csvimport.NewErrorCollection(csvimport.DefaultMaxErrors)
	req := ParseCashBookRows(records[header+1:], errs)
	if len(req.Transactions) == 0 && !errs.HasErrors() {
		return nil, ErrImportEmpty
	}
	req.UserID = userID
	return s.run(ctx, req, errs)
}

// ImportManual books transactions already split into credit and debit sides
func (s *CashBookImportService) ImportManual(ctx context.Context, req CashBookImportRequest) (*CashBookImportResult, error) {
	if len(req.Transactions) == 0 {
		return nil, ErrImportNoRows
	}
	for i := range req.Transactions {
		t := &req.Transactions[i]
		if t.Row == 0 {
			t.Row = i + 1
		}
		switch {
		case strings.EqualFold(t.Direction, DirectionCredit):
			t.Direction = DirectionCredit
		case strings.EqualFold(t.Direction, DirectionDebit):
			t.Direction = DirectionDebit
		default:
			return nil, shared.NewDomainError("INVALID_DIRECTION", fmt.Sprintf("Transaction %d: direction must be Credit or Debit", t.Row))
		}
	}
	return s.run(ctx, req, csvimport.NewErrorCollection(csvimport.DefaultMaxErrors))
}

func isCashBookHeader(rec csvimport.Record) bool {
	return rec.Contains("date") && rec.Contains("amount") &&
		(rec.Contains("catagories") || rec.Contains("categories"))
}

// ParseCashBookRows turns sheet rows into transactions. A side is read when both its
// date and amount cells are filled and the date cell holds digits. Bad cells are
// collected in errs and the side is skipped.
func ParseCashBookRows(records []csvimport.Record, errs *csvimport.ErrorCollection) CashBookImportRequest {
	var req CashBookImportRequest
	suppliers := newNameSet()
	buyers := newNameSet()

	for _, rec := range records {
		if t, ok := parseSide(rec, errs, DirectionCredit, colCreditDate, colCreditAmount); ok {
			t.Category = rec.Field(colCreditCategory)
			t.Particulars = rec.Field(colCreditParticulars)
			req.Transactions = append(req.Transactions, t)
		}
		if t, ok := parseSide(rec, errs, DirectionDebit, colDebitDate, colDebitAmount); ok {
			t.Category = rec.Field(colDebitCategory)
			t.Supplier = rec.Field(colSupplier)
			t.Buyer = rec.Field(colBuyer)
			t.Particulars = rec.Field(colDebitParticulars)
			suppliers.add(t.Supplier)
			buyers.add(t.Buyer)
			req.Transactions = append(req.Transactions, t)
		}
	}
	req.Suppliers = suppliers.names
	req.Buyers = buyers.names
	return req
}

func parseSide(rec csvimport.Record, errs *csvimport.ErrorCollection, direction string, dateCol, amountCol int) (ImportTransaction, bool) {
	rawDate, rawAmount := rec.Field(dateCol), rec.Field(amountCol)
	if rawDate == "" || rawAmount == "" {
		return ImportTransaction{}, false
	}
	// Total and balance lines carry a label where the date goes
	if !strings.ContainsAny(rawDate, "0123456789") {
		return ImportTransaction{}, false
	}

	date, err := parseSheetDate(rawDate)
	if err != nil {
		errs.AddFormatError(rec.Line, direction+" Date", "dd-MM-yyyy or dd-MM-yy", rawDate)
		return ImportTransaction{}, false
	}
	amount, err := parseSheetAmount(rawAmount)
	if err != nil {
		errs.AddFormatError(rec.Line, direction+" Amount", "a number such as 2,400", rawAmount)
		return ImportTransaction{}, false
	}
	if amount.IsZero() {
		return ImportTransaction{}, false
	}
	return ImportTransaction{Row: rec.Line, Direction: direction, Date: date, Amount: amount}, true
}

// parseSheetDate reads dd-MM-yyyy or dd-MM-yy. Two-digit years are in this century.
func parseSheetDate(s string) (time.Time, error) {
	t, err := time.Parse(creditDateLayout, s)
	if err != nil {
		if t, err = time.Parse(debitDateLayout, s); err != nil {
			return time.Time{}, err
		}
	}
	if t.Year() < 2000 {
		t = t.AddDate(100, 0, 0)
	}
	return t, nil
}

// parseSheetAmount reads amounts with thousands separators
func parseSheetAmount(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(",", "", `"`, "", " ", "").Replace(s)
	return decimal.NewFromString(s)
}

func (s *CashBookImportService) run(ctx context.Context, req CashBookImportRequest, errs *csvimport.ErrorCollection) (_ *CashBookImportResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "CashBookImportService", "Import")
	defer func() { telemetry.EndSpan(span, err) }()

	result := &CashBookImportResult{TotalReceived: decimal.Zero, TotalExpenses: decimal.Zero}
	parseErrors := errs.TotalCount()

	created, err := s.ensureContacts(ctx, req, errs)
	if err != nil {
		return nil, err
	}
	result.ContactsCreated = created

	for _, t := range req.Transactions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dto, err := s.save(ctx, t, req.UserID)
		if err != nil {
			errs.AddRejected(t.Row, t.Direction, rejectionMessage(err))
			continue
		}
		result.TransactionsImported++
		if dto.AccountCreated {
			result.AccountsCreated++
		}
		if req.TrialBalance != nil && req.TrialBalance.AsOfDate != nil && t.Date.After(*req.TrialBalance.AsOfDate) {
			continue
		}
		if t.Direction == DirectionCredit {
			result.TotalReceived = result.TotalReceived.Add(t.Amount)
		} else {
			result.TotalExpenses = result.TotalExpenses.Add(t.Amount)
		}
	}

	result.TrialBalanceValidated = reconciles(req.TrialBalance, result)
	result.Errors = errs.Errors()
	result.TotalErrors = errs.TotalCount()
	result.IsTruncated = errs.IsTruncated()
	result.IsSuccess = !errs.HasErrors()
	result.Message = importMessage(result, req.TrialBalance != nil)

	s.metrics.ImportRows("imported", result.TransactionsImported)
	s.metrics.ImportRows("failed", result.TotalErrors-parseErrors)
	s.metrics.ImportRows("unreadable", parseErrors)
	s.logger.Info("Cash book import finished",
		zap.Int("imported", result.TransactionsImported),
		zap.Int("errors", result.TotalErrors),
		zap.Int("accounts_created", result.AccountsCreated),
		zap.Int("contacts_created", result.ContactsCreated),
		zap.Bool("trial_balance_validated", result.TrialBalanceValidated),
	)
	return result, nil
}

func (s *CashBookImportService) save(ctx context.Context, t ImportTransaction, userID uuid.UUID) (*CashTransactionDTO, error) {
	in := CashTransactionInput{
		Date:         t.Date,
		CategoryName: t.Category,
		Particulars:  t.Particulars,
		Amount:       t.Amount,
		ContactName:  firstNonEmpty(t.Supplier, t.Buyer),
		UserID:       userID,
	}
	if strings.TrimSpace(in.Particulars) == "" {
		in.Particulars = firstNonEmpty(in.ContactName, t.Category)
	}
	if t.Direction == DirectionCredit {
		return s.cash.SaveCredit(ctx, in)
	}
	return s.cash.SaveDebit(ctx, in)
}

type contactRef struct {
	name string
	typ  partner.ContactType
	row  int
}

func (s *CashBookImportService) ensureContacts(ctx context.Context, req CashBookImportRequest, errs *csvimport.ErrorCollection) (int, error) {
	if s.contacts == nil {
		return 0, nil
	}
	var refs []contactRef
	for _, name := range req.Suppliers {
		refs = append(refs, contactRef{name, partner.ContactTypeSupplier, 0})
	}
	for _, name := range req.Buyers {
		refs = append(refs, contactRef{name, partner.ContactTypeCustomer, 0})
	}
	for _, t := range req.Transactions {
		refs = append(refs, contactRef{t.Supplier, partner.ContactTypeSupplier, t.Row}, contactRef{t.Buyer, partner.ContactTypeCustomer, t.Row})
	}

	seen := newNameSet()
	created := 0
	for _, ref := range refs {
		if !seen.add(ref.name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		ok, err := s.contacts.EnsureContact(ctx, strings.TrimSpace(ref.name), ref.typ)
		if err != nil {
			errs.AddRejected(ref.row, string(ref.typ), rejectionMessage(err))
			continue
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// reconciles compares imported totals with the source trial balance. Without totals there is nothing to validate.
func reconciles(tb *TrialBalanceTotals, result *CashBookImportResult) bool {
	if tb == nil {
		return false
	}
	cash := result.TotalReceived.Sub(result.TotalExpenses)
	return result.TotalReceived.Equal(tb.TotalReceived) &&
		result.TotalExpenses.Equal(tb.TotalExpenses) &&
		cash.Equal(tb.CashInHand)
}

func importMessage(result *CashBookImportResult, withTotals bool) string {
	msg := fmt.Sprintf("Imported %d cash book transactions", result.TransactionsImported)
	if result.TotalErrors > 0 {
		msg += fmt.Sprintf(", %d rows need attention", result.TotalErrors)
	}
	if withTotals && !result.TrialBalanceValidated {
		msg += "; totals do not match the trial balance"
	}
	return msg
}

func rejectionMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "could not be saved"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// nameSet keeps names in first-seen order, ignoring case and blanks
type nameSet struct {
	seen  map[string]bool
	names []string
}

func newNameSet() *nameSet {
	return &nameSet{seen: make(map[string]bool)}
}

func (n *nameSet) add(name string) bool {
	name = strings.TrimSpace(name)
	key := strings.ToLower(name)
	if name == "" || n.seen[key] {
		return false
	}
	n.seen[key] = true
	n.names = append(n.names, name)
	return true
}

var (
	sampleColumns = []string{
		"Date", "Catagories", "Particulars", "Amount",
		"Date", "Catagories", "Supplier", "Buyer", "Particulars", "Amount",
	}
	sampleCreditCategories = []string{
		"Loan A/C Chairman", "Received: Urbo ltd", "Received: Brooklyn BD", "Received: Kafit Gallery", "Received: Adl",
	}
	sampleDebitCategories = []string{
		"Fabric- Purchase", "Accessories Bill", "Salary A/C", "Subcontract bill", "Machine- Purchase",
		"Electric Bill", "Carriage Bill", "Convence", "Tiffin Bill", "Entertainment Bill",
		"Factory Maintance", "Office Maintance",
	}
)

// ImportSampleFormat documents the expected cash book sheet
type ImportSampleFormat struct {
	Format     string              `json:"format"`
	Columns    []string            `json:"columns"`
	CreditDate string              `json:"credit_date"`
	DebitDate  string              `json:"debit_date"`
	Amount     string              `json:"amount"`
	ExampleRow string              `json:"example_row"`
	Categories map[string][]string `json:"categories"`
}

// SampleFormat describes the sheet ImportCSV reads
func (s *CashBookImportService) SampleFormat() ImportSampleFormat {
	return ImportSampleFormat{
		Format:     "Cash book CSV: credit ledger in columns 1-4, debit ledger in columns 5-10, below a header row",
		Columns:    sampleColumns,
		CreditDate: "dd-MM-yyyy, e.g. 01-02-2025",
		DebitDate:  "dd-MM-yy, e.g. 01-02-25",
		Amount:     "thousands separators allowed, e.g. 261,080",
		ExampleRow: `01-02-2025,Loan A/C Chairman,,"261,080",01-02-25,Subcontract bill,,Brooklyn: Joggers,,"2,400"`,
		Categories: map[string][]string{
			DirectionCredit: sampleCreditCategories,
			DirectionDebit:  sampleDebitCategories,
		},
	}
}
