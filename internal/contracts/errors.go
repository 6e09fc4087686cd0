package contracts

import "errors"

// Structural failures. Data-quality problems never surface as errors;
// they downgrade ratios to unreliable instead.
var (
	ErrNilDataset            = errors.New("dataset is nil")
	ErrEmptyDataset          = errors.New("dataset has no facts")
	ErrUnsupportedStatement  = errors.New("unsupported statement")
	ErrInvalidYear           = errors.New("invalid fiscal year")
	ErrInvalidLoanParameters = errors.New("invalid loan parameters")
	ErrInvalidCADFacts       = errors.New("invalid CAD loan facts")
	ErrUnsupportedSource     = errors.New("unsupported source type")
)

// IsInputError reports whether err is caused by caller input rather than an internal fault
func IsInputError(err error) bool {
	for _, target := range []error{
		ErrNilDataset,
		ErrEmptyDataset,
		ErrUnsupportedStatement,
		ErrInvalidYear,
		ErrInvalidLoanParameters,
		ErrInvalidCADFacts,
		ErrUnsupportedSource,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
