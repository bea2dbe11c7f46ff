// Package core holds the value types shared by the marketplace components:
// account addresses, asset identifiers, native-value amounts, percentages and
// content keys.
package core
