package model

// Command is a workflow command decoded from an interactive component.
// Exactly one of the concrete types below is produced per button press;
// the workflow engine never sees raw identifier strings.
type Command interface {
	// Doc returns the document identifier the command targets.
	Doc() string

	isCommand()
}

// SelectPage stages a page change pending operator confirmation.
type SelectPage struct {
	Page  Page
	DocID string
}

// Confirm resolves a previously staged page change.
type Confirm struct {
	Approve bool
	Page    Page
	DocID   string
}

// DeleteDoc removes the document from the store.
type DeleteDoc struct {
	DocID string
}

func (c SelectPage) Doc() string { return c.DocID }
func (c Confirm) Doc() string    { return c.DocID }
func (c DeleteDoc) Doc() string  { return c.DocID }

func (SelectPage) isCommand() {}
func (Confirm) isCommand()    {}
func (DeleteDoc) isCommand()  {}
