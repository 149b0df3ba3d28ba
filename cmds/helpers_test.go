package cmds

import (
	"strings"
	"testing"
)

func TestVar(t *testing.T) {
	a := Var[int]("foo", "an int")
	b := Var[string]("bar", "a string")
	GlobalExecutor.MustExecute([]string{
		"foo", "42",
		"bar", "bar",
	})
	if *a != 42 {
		t.Fatal()
	}
	if *b != "bar" {
		t.Fatal()
	}
	GlobalExecutor.MustExecute([]string{
		"foo.",
	})
	if *a != 0 {
		t.Fatalf("got %v", *a)
	}
}

func TestSwitch(t *testing.T) {
	foo := Switch("TestSwitch", "a switch")
	GlobalExecutor.MustExecute([]string{
		"TestSwitch",
	})
	if *foo != true {
		t.Fatal()
	}
	GlobalExecutor.MustExecute([]string{
		"!TestSwitch",
	})
	if *foo != false {
		t.Fatal()
	}
}

func TestTypedVar(t *testing.T) {
	type Foo string
	v := Var[Foo]("TestTypedVar", "a typed var")
	GlobalExecutor.MustExecute([]string{
		"TestTypedVar", "bar",
	})
	if *v != "bar" {
		t.Fatal()
	}
}

func TestHelperUsage(t *testing.T) {
	Var[int]("TestHelperUsage", "helper description")
	buf := new(strings.Builder)
	GlobalExecutor.WriteUsage(buf)
	if !strings.Contains(buf.String(), "TestHelperUsage\thelper description\n") {
		t.Fatalf("got %s", buf.String())
	}
	if !strings.Contains(buf.String(), "TestHelperUsage.\treset TestHelperUsage\n") {
		t.Fatalf("got %s", buf.String())
	}
}
