package robostat

// Kind is a typed string identifying the kind of a statement record.
type Kind string

// Record kinds recognized in a statement.
const (
	KindBuy       Kind = "buy"
	KindSell      Kind = "sell"
	KindDividend  Kind = "dividend"
	KindFee       Kind = "fee"
	KindCashTopUp Kind = "cash-top-up"
)

// Record is one recognized row of a statement.
//
// It is implemented by Buy, Sell, Dividend, Fee and CashTopUp only.
type Record interface {
	What() Kind // What returns the kind of the record.
	Where() int // Where returns the 1-based line of the record in the statement.
}

type baseRecord struct {
	Line int
}

// Where returns the statement line the record was read from.
func (r baseRecord) Where() int { return r.Line }

// Buy records a purchase of Quantity units of Ticker for a total of Amount.
type Buy struct {
	baseRecord
	Ticker   string
	Quantity Quantity
	Price    Money // Price per unit as printed in the statement.
	Amount   Money // Amount is the total cost of the purchase.
}

func (Buy) What() Kind { return KindBuy }

// NewBuy creates a new Buy record.
func NewBuy(line int, ticker string, quantity Quantity, price, amount Money) Buy {
	return Buy{baseRecord: baseRecord{line}, Ticker: ticker, Quantity: quantity, Price: price, Amount: amount}
}

// Sell records a sale of Quantity units of Ticker for a total of Amount.
type Sell struct {
	baseRecord
	Ticker   string
	Quantity Quantity
	Price    Money // Price is optional, zero when the statement leaves it blank.
	Amount   Money
}

func (Sell) What() Kind { return KindSell }

// NewSell creates a new Sell record.
func NewSell(line int, ticker string, quantity Quantity, amount Money) Sell {
	return Sell{baseRecord: baseRecord{line}, Ticker: ticker, Quantity: quantity, Amount: amount}
}

// Dividend records a dividend payment. Ticker may be empty.
type Dividend struct {
	baseRecord
	Ticker string
	Amount Money
}

func (Dividend) What() Kind { return KindDividend }

// NewDividend creates a new Dividend record.
func NewDividend(line int, ticker string, amount Money) Dividend {
	return Dividend{baseRecord: baseRecord{line}, Ticker: ticker, Amount: amount}
}

// Fee records a management fee. Only the magnitude of Amount is meaningful.
type Fee struct {
	baseRecord
	Amount Money
}

func (Fee) What() Kind { return KindFee }

// NewFee creates a new Fee record.
func NewFee(line int, amount Money) Fee {
	return Fee{baseRecord: baseRecord{line}, Amount: amount}
}

// CashTopUp records cash injected into the account.
//
// It is modelled as a purchase of the settlement currency itself: Ticker is
// the currency code, Quantity equals Amount and Price is one.
type CashTopUp struct {
	baseRecord
	Ticker   string
	Quantity Quantity
	Price    Money
	Amount   Money
}

func (CashTopUp) What() Kind { return KindCashTopUp }

// NewCashTopUp creates a CashTopUp record of 'amount' in the amount's currency.
func NewCashTopUp(line int, amount Money) CashTopUp {
	return CashTopUp{
		baseRecord: baseRecord{line},
		Ticker:     amount.Currency(),
		Quantity:   amount.AsQuantity(),
		Price:      M(1, amount.Currency()),
		Amount:     amount,
	}
}
