package models

import "fmt"

type OptionType string

const (
	OptionTypeCall OptionType = "CE"
	OptionTypePut  OptionType = "PE"
)

func (o OptionType) Validate() error {
	if o != OptionTypeCall && o != OptionTypePut {
		return fmt.Errorf("OptionType: Validate: invalid option type: %s", o)
	}

	return nil
}

// OptionTypes returns both contract sides in the order symbols are emitted.
func OptionTypes() []OptionType {
	return []OptionType{OptionTypeCall, OptionTypePut}
}
