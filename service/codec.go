package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/digimonapk/dicords/model"
)

// Component identifiers are delimiter-joined tokens:
//
//	page_<p>_<docId>
//	confirm_<yes|no>_<p>_<docId>
//	delete_<docId>
//
// The document id is always the last field. Decoding consumes the fixed
// leading fields positionally and rejoins everything after them, so ids
// that themselves contain the delimiter survive a round trip intact.

const delimiter = "_"

const (
	prefixPage    = "page"
	prefixConfirm = "confirm"
	prefixDelete  = "delete"

	confirmYes = "yes"
	confirmNo  = "no"
)

// EncodeCommand renders a workflow command as a component identifier.
func EncodeCommand(cmd model.Command) string {
	switch c := cmd.(type) {
	case model.SelectPage:
		return strings.Join([]string{prefixPage, strconv.Itoa(int(c.Page)), c.DocID}, delimiter)
	case model.Confirm:
		answer := confirmNo
		if c.Approve {
			answer = confirmYes
		}
		return strings.Join([]string{prefixConfirm, answer, strconv.Itoa(int(c.Page)), c.DocID}, delimiter)
	case model.DeleteDoc:
		return strings.Join([]string{prefixDelete, c.DocID}, delimiter)
	default:
		return ""
	}
}

// DecodeCommand parses a component identifier back into a command.
func DecodeCommand(customID string) (model.Command, error) {
	parts := strings.Split(customID, delimiter)

	switch parts[0] {
	case prefixPage:
		if len(parts) < 3 {
			return nil, &DecodeError{CustomID: customID, Reason: "expected page_<p>_<docId>"}
		}
		page, err := decodePage(parts[1])
		if err != nil {
			return nil, &DecodeError{CustomID: customID, Reason: err.Error()}
		}
		return model.SelectPage{Page: page, DocID: joinRest(parts, 2)}, nil

	case prefixConfirm:
		if len(parts) < 4 {
			return nil, &DecodeError{CustomID: customID, Reason: "expected confirm_<yes|no>_<p>_<docId>"}
		}
		if parts[1] != confirmYes && parts[1] != confirmNo {
			return nil, &DecodeError{CustomID: customID, Reason: fmt.Sprintf("unknown answer %q", parts[1])}
		}
		page, err := decodePage(parts[2])
		if err != nil {
			return nil, &DecodeError{CustomID: customID, Reason: err.Error()}
		}
		return model.Confirm{
			Approve: parts[1] == confirmYes,
			Page:    page,
			DocID:   joinRest(parts, 3),
		}, nil

	case prefixDelete:
		if len(parts) < 2 {
			return nil, &DecodeError{CustomID: customID, Reason: "expected delete_<docId>"}
		}
		return model.DeleteDoc{DocID: joinRest(parts, 1)}, nil

	default:
		return nil, &DecodeError{CustomID: customID, Reason: fmt.Sprintf("unknown command %q", parts[0])}
	}
}

func decodePage(field string) (model.Page, error) {
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("page %q is not a number", field)
	}
	page := model.Page(n)
	if !page.Valid() {
		return 0, fmt.Errorf("page %d out of range", n)
	}
	return page, nil
}

func joinRest(parts []string, from int) string {
	return strings.Join(parts[from:], delimiter)
}
