package fuzztests

import (
	"strings"
	"testing"
)

const maxFuzzInput = 64 << 10 // 64 KiB

var csharpSeeds = []string{
	"",
	"using System;\nnamespace N { class C { void M() { } } }\n",
	"namespace N;\npublic record R(int X);\n",
	"/// <summary>doc</summary>\nclass C { int P { get; set; } }\n",
	"class C { void M() { Action a = delegate { return; }; Func<int> f = () => { return 1; }; } }\n",
	"enum E { A, B = 2, C }\n",
	"var s = $\"{x} and {\"nested\"}\";\nvar v = @\"verbatim \"\" quote\";\n",
	"var raw = \"\"\"\n  raw text\n  \"\"\";\n",
	"#if DEBUG\nclass C { }\n#endif\n",
	"class C { void M() { int Local(int x) { return x; } } }\n",
	"namespace N { class C {",  // unclosed
	"class C { } } }",          // stray closers
	"var s = \"unterminated\n", // unterminated string
	"/* unterminated comment",  // unterminated block comment
	"class C { void M() { try { } catch (E e) when (e != null) { } finally { } } }\n",
	"[A(\"x\")]\nclass C<T>\n    : B<T>\n    where T : new()\n{\n    [Obsolete] void M() { }\n}\n",
	"namespace N\r{\r    // mac\r    class C { }\r}\r",
}

var goSeeds = []string{
	"",
	"package p\n",
	"package p\n\nimport \"fmt\"\n\n// F does things.\nfunc F() { fmt.Println(func() int { return 1 }()) }\n",
	"package p\n\ntype T struct{ A int }\n\nconst (\n\tA = iota\n\tB\n)\n",
	"package p\nfunc f( {",
}

func addSeeds(f *testing.F, seeds []string) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
	// длинные строки, чтобы правило вообще срабатывало
	long := strings.Repeat("x", 130)
	f.Add([]byte("namespace N {\n    var s = \"" + long + "\";\n}\n"))
	f.Add([]byte("package p\n\nvar s = \"" + long + "\"\n"))
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
