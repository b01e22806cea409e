package models

// IdentifierKind is the kind of identifier a customer can use to
// look up a service order.
type IdentifierKind string

const (
	IdentifierCPF   IdentifierKind = "cpf"
	IdentifierPhone IdentifierKind = "telefone"
	IdentifierPlate IdentifierKind = "placa"
	IdentifierOrder IdentifierKind = "ordem"
	IdentifierNone  IdentifierKind = ""
)

// Vehicle describes the customer's vehicle on the service order.
type Vehicle struct {
	Model string `json:"modelo"`
	Plate string `json:"placa"`
	Year  string `json:"ano"`
}

// ClientRecord is one customer's service-order record as returned by
// the CarGlass status API (or the mock dataset). It is value data:
// copied into sessions, never mutated after the lookup.
type ClientRecord struct {
	Name        string  `json:"nome"`
	CPF         string  `json:"cpf"`
	Phone       string  `json:"telefone"`
	OrderID     string  `json:"ordem"`
	Status      string  `json:"status"`
	ServiceType string  `json:"tipo_servico"`
	Vehicle     Vehicle `json:"veiculo"`
}

// LookupResult is the tagged outcome of a client-data lookup.
// Either Found is true and Record is set, or Found is false and
// Reason carries a short user-safe explanation.
type LookupResult struct {
	Found  bool          `json:"sucesso"`
	Record *ClientRecord `json:"dados,omitempty"`
	Reason string        `json:"mensagem,omitempty"`
}

// NotFound builds a failed lookup result.
func NotFound(reason string) LookupResult {
	return LookupResult{Found: false, Reason: reason}
}

// Found builds a successful lookup result.
func Found(record *ClientRecord) LookupResult {
	return LookupResult{Found: true, Record: record}
}
