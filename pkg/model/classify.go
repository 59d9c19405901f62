package model

import "strings"

// Organism classes. The order of organismClasses is the matching order.
const (
	ClassHuman    = "Human"
	ClassBacteria = "Bacteria"
	ClassYeast    = "Yeast"
	ClassMouse    = "Mouse"
	ClassOther    = "Other"
)

var organismClasses = []struct {
	substring string
	class     string
}{
	{"Homo sapiens", ClassHuman},
	{"Escherichia coli", ClassBacteria},
	{"Saccharomyces cerevisiae", ClassYeast},
	{"Mus musculus", ClassMouse},
}

// Classify maps an organism label to its class by substring.
func Classify(organism string) string {
	for _, c := range organismClasses {
		if strings.Contains(organism, c.substring) {
			return c.class
		}
	}
	return ClassOther
}
