package pipeline

import (
	"errors"
	"log/slog"
	"math"
	"sort"

	"github.com/lodgeworks/utility-bills-tracker/constants"
	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
	"github.com/lodgeworks/utility-bills-tracker/internal/extract"
	"github.com/lodgeworks/utility-bills-tracker/internal/registry"
)

// Document is one unit of pipeline input: the raw text of a source file,
// or a pre-tagged unreadable entry when text extraction already failed.
type Document struct {
	SourceID   string
	Name       string
	Text       string
	Unreadable bool
}

// Reconciler classifies a batch of documents into the six outcome lists.
type Reconciler struct {
	accommodations registry.AccommodationRegistry
	paid           registry.PaidBillRegistry
	exceptions     registry.ExceptionRegistry
	extractFn      func(string) *entity.Bill
	logger         *slog.Logger
}

func NewReconciler(accommodations registry.AccommodationRegistry, paid registry.PaidBillRegistry, exceptions registry.ExceptionRegistry, logger *slog.Logger) (*Reconciler, error) {
	if accommodations == nil || paid == nil || exceptions == nil {
		return nil, errors.New("reconciler: all registries are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		accommodations: accommodations,
		paid:           paid,
		exceptions:     exceptions,
		extractFn:      extract.Classify,
		logger:         logger,
	}, nil
}

// Process runs the whole batch: extraction over every document, then the
// rule chain over the extracted bills. It never fails per-document; each
// document lands in exactly one outcome list.
func (r *Reconciler) Process(docs []Document) *entity.BatchResult {
	result := &entity.BatchResult{}

	pending := r.extractAll(docs, result)

	// Larger-looking face amounts first. This is deliberately a sort on
	// the raw amount STRING, not the parsed value: it matches the
	// ordering that decides which of two duplicates counts as first
	// seen, and changing it would silently change report contents.
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Bill.RawAmount > pending[j].Bill.RawAmount
	})

	for _, item := range pending {
		r.reconcile(item, result)
	}

	r.logger.Info("pipeline.done",
		"accepted", len(result.Accepted),
		"not_found", len(result.NotFound),
		"errors", len(result.Errors),
		"expired", len(result.Expired),
		"duplicates", len(result.Duplicates),
		"ignored", len(result.Ignored),
	)
	return result
}

// extractAll turns documents into candidate bills, routing unreadable,
// undetected and detail documents into the ignored list as it goes.
func (r *Reconciler) extractAll(docs []Document, result *entity.BatchResult) []entity.Accepted {
	var pending []entity.Accepted

	for _, doc := range docs {
		file := entity.NewFileRef(doc.SourceID, doc.Name)

		if doc.Unreadable {
			result.Ignored = append(result.Ignored, entity.Ignored{File: file, Tag: constants.TagPDFUnreadable})
			r.logger.Info("pipeline.ignored", "record", file.ID, "file", doc.Name, "tag", constants.TagPDFUnreadable)
			continue
		}

		bill, err := r.classify(doc.Text)
		if err != nil {
			result.Errors = append(result.Errors, entity.Rejected{File: file, Tag: constants.TagProcessingError})
			r.logger.Error("pipeline.extract.failed", "record", file.ID, "file", doc.Name, "err", err)
			continue
		}
		if bill == nil {
			result.Ignored = append(result.Ignored, entity.Ignored{File: file, Tag: constants.TagUndetectedProvider})
			r.logger.Info("pipeline.ignored", "record", file.ID, "file", doc.Name, "tag", constants.TagUndetectedProvider)
			continue
		}
		if bill.DocumentType == constants.DocInvoiceDetail {
			result.Ignored = append(result.Ignored, entity.Ignored{File: file, Tag: constants.TagInvoiceDetail})
			r.logger.Info("pipeline.ignored", "record", file.ID, "file", doc.Name, "tag", constants.TagInvoiceDetail)
			continue
		}

		pending = append(pending, entity.Accepted{File: file, Bill: bill})
	}

	return pending
}

// classify wraps extraction with a panic boundary: one hostile document
// must not take the batch down.
func (r *Reconciler) classify(text string) (bill *entity.Bill, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			bill = nil
			err = errorFromPanic(rec)
		}
	}()
	return r.extractFn(text), nil
}

func errorFromPanic(rec any) error {
	if e, ok := rec.(error); ok {
		return e
	}
	return errors.New("extraction panic")
}

// reconcile applies the ordered rule chain to one candidate bill,
// short-circuiting on the first rule that claims it.
func (r *Reconciler) reconcile(item entity.Accepted, result *entity.BatchResult) {
	bill := item.Bill
	r.logger.Info("pipeline.check", "record", item.File.ID, "file", item.File.Name)

	// 1. Completeness.
	if !bill.IsComplete() {
		result.Errors = append(result.Errors, entity.Rejected{File: item.File, Tag: constants.TagIncompleteInfo, Bill: bill})
		return
	}

	// 2. In-batch duplicate against everything accepted so far.
	for i := range result.Accepted {
		if bill.Equal(result.Accepted[i].Bill) {
			result.Duplicates = append(result.Duplicates, entity.Duplicated{File: item.File, Tag: constants.TagDuplicateFile, Bill: bill})
			return
		}
	}

	// 3. Accommodation lookup.
	acc := r.accommodations.Get(bill.Provider, bill.ClientID, bill.AccountID, bill.ContractID, bill.ConsumptionLocation, bill.InstallationID)
	if acc == nil {
		result.NotFound = append(result.NotFound, entity.Rejected{File: item.File, Tag: constants.TagNoAccommodation, Bill: bill})
		return
	}
	bill.AccommodationID = acc.ID
	bill.FolderID = acc.FolderID
	bill.AccountingFolderID = acc.AccountingFolderID

	// 4. Service-start and closed-period validity, on the due date when
	// present, the issue date otherwise.
	if bill.DueDate != nil {
		if !acc.ValidStartDate(*bill.DueDate) {
			result.Expired = append(result.Expired, entity.Rejected{File: item.File, Tag: constants.TagBeforeStartDateDue, Bill: bill})
			return
		}
		if acc.InClosedPeriod(*bill.DueDate) {
			result.Expired = append(result.Expired, entity.Rejected{File: item.File, Tag: constants.TagPeriodClosedDue, Bill: bill})
			return
		}
	} else if bill.IssueDate != nil {
		if !acc.ValidStartDate(*bill.IssueDate) {
			result.Expired = append(result.Expired, entity.Rejected{File: item.File, Tag: constants.TagBeforeStartDateIssue, Bill: bill})
			return
		}
		if acc.InClosedPeriod(*bill.IssueDate) {
			result.Expired = append(result.Expired, entity.Rejected{File: item.File, Tag: constants.TagPeriodClosedIssue, Bill: bill})
			return
		}
	}

	// 5. Credit notes and zeroed invoices must carry an issue date.
	if bill.DocumentType == constants.DocCreditNote || bill.DocumentType == constants.DocZeroedInvoice {
		if bill.IssueDate == nil {
			result.Errors = append(result.Errors, entity.Rejected{File: item.File, Tag: constants.TagMissingIssueDate, Bill: bill})
			return
		}
	}

	// 6. Already paid in a previous run.
	if paid := r.paid.Get(bill.Provider, bill.ServiceType, bill.AccommodationID, bill.DocumentID); paid != nil {
		result.Duplicates = append(result.Duplicates, entity.Duplicated{
			File:           item.File,
			Tag:            constants.TagAlreadyPaid,
			Bill:           bill,
			OriginalFileID: paid.OriginalFileID,
		})
		return
	}

	// 7. Accounting routing flag.
	bill.IsAccounting = acc.MustAccounting(bill.ServiceType)

	// 8. Exception rules (cost splitting).
	if r.applyException(item, result) {
		return
	}

	// 9. Accepted.
	item.OutputName = bill.CanonicalFileName()
	result.Accepted = append(result.Accepted, item)
}

// applyException consults the exception registry. Reports whether a rule
// consumed the bill: split siblings are appended as accepted outcomes,
// anything else becomes an error.
func (r *Reconciler) applyException(item entity.Accepted, result *entity.BatchResult) bool {
	bill := item.Bill
	rule := r.exceptions.Get(bill.AccommodationID, bill.Provider.ExceptionTag())
	if rule == nil {
		return false
	}

	if rule.Type == entity.RuleSplitEvenly && len(rule.Destinations) > 0 && bill.Amount != nil {
		sharedName := bill.CanonicalFileName()
		share := round2(*bill.Amount / float64(len(rule.Destinations)))

		for _, dest := range rule.Destinations {
			sibling := *bill
			amount := share
			sibling.Amount = &amount
			sibling.DocumentType = constants.DocConsumptionBillSplit
			sibling.AccommodationID = dest
			result.Accepted = append(result.Accepted, entity.Accepted{
				File:       item.File,
				Bill:       &sibling,
				OutputName: sharedName,
			})
		}
		r.logger.Info("pipeline.split", "record", item.File.ID, "file", item.File.Name, "destinations", len(rule.Destinations))
		return true
	}

	result.Errors = append(result.Errors, entity.Rejected{File: item.File, Tag: constants.TagUnhandledException, Bill: bill})
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
