package compiler

// Language is the closed set of language tokens accepted on the wire
// (spec.md §6). Values are the lowercase wire tokens themselves so
// (de)serialization needs no translation table.
type Language string

const (
	LanguageC              Language = "c"
	LanguageCpp            Language = "cpp"
	LanguagePython         Language = "python"
	LanguageRust           Language = "rust"
	LanguageJava           Language = "java"
	LanguageGo             Language = "go"
	LanguageGnuAsmX86Linux Language = "gnuasmx86linux"
)

// pipeline describes how to invoke a compiler with stdin holding the
// source and "out" as the fixed output artifact name inside the box.
type pipeline struct {
	executable string
	args       []string
	mounts     []string
}

// compilePipelines is grounded on original_source/src/evaluate/language.rs
// (get_compiler_command), generalized from the obsolete drafts' "-o
// <random>" convention to the spec's fixed "out" name fed via stdin.
var compilePipelines = map[Language]pipeline{
	LanguageC: {
		executable: "/usr/bin/gcc",
		args:       []string{"-std=c11", "-x", "c", "-O2", "-static", "-Wall", "-o", "out", "-", "-lm"},
	},
	LanguageCpp: {
		executable: "/usr/bin/g++",
		args:       []string{"-std=c++17", "-x", "c++", "-O2", "-static", "-Wall", "-o", "out", "-"},
	},
	LanguageRust: {
		executable: "/usr/bin/rustc",
		args:       []string{"-C", "opt-level=2", "-C", "target-feature=+crt-static", "-o", "out", "-"},
	},
	LanguageGo: {
		executable: "/usr/bin/bash",
		args:       []string{"-c", "cat > source.go && GOCACHE=/tmp/.gocache /usr/bin/go build -o out source.go && rm source.go"},
	},
	LanguageJava: {
		executable: "/usr/bin/bash",
		args:       []string{"-c", "cat > source.java && /usr/bin/javac source.java && mv Main.class out"},
		mounts:     []string{"/etc/java-11-openjdk:noexec", "/etc/java:noexec"},
	},
	LanguageGnuAsmX86Linux: {
		executable: "/usr/bin/gcc",
		args:       []string{"-x", "assembler", "-static", "-nostdlib", "-no-pie", "-o", "out", "-"},
	},
}
