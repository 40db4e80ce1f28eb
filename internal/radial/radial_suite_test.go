package radial_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRadial(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Radial Suite")
}
