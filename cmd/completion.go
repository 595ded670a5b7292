package cmd

import (
	"fmt"
	"io"
	"strings"
)

var completionCommands = []string{
	"ls", "add", "done", "rm", "tui", "export", "import",
	"config", "completion", "version", "help",
}

// completionCommand prints a shell completion script.
func completionCommand(w io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("completion: expected a shell (bash, zsh, fish, powershell)")
	}

	words := strings.Join(completionCommands, " ")
	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Fprintf(w, bashCompletion, words)
	case "zsh":
		fmt.Fprintf(w, zshCompletion, words)
	case "fish":
		fmt.Fprintf(w, fishCompletion, words)
	case "powershell", "pwsh":
		fmt.Fprintf(w, powershellCompletion, strings.Join(completionCommands, "', '"))
	default:
		return fmt.Errorf("completion: unsupported shell %q", args[0])
	}
	return nil
}

const bashCompletion = `# tasklist bash completion
_tasklist() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    case "$prev" in
        -p|--priority|--filter)
            COMPREPLY=($(compgen -W "All 1 2 3 4 5" -- "$cur"))
            return
            ;;
        --file|import|-o|--out)
            COMPREPLY=($(compgen -f -- "$cur"))
            return
            ;;
    esac
    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=($(compgen -W "%s" -- "$cur"))
    fi
}
complete -F _tasklist tasklist
`

const zshCompletion = `#compdef tasklist
# tasklist zsh completion
_tasklist() {
    if (( CURRENT == 2 )); then
        compadd -- %s
        return
    fi
    case "${words[CURRENT-1]}" in
        -p|--priority|--filter) compadd -- All 1 2 3 4 5 ;;
        *) _files ;;
    esac
}
compdef _tasklist tasklist
`

const fishCompletion = `# tasklist fish completion
complete -c tasklist -f -n "__fish_use_subcommand" -a "%s"
complete -c tasklist -l priority -s p -x -a "All 1 2 3 4 5"
complete -c tasklist -l file -r
`

const powershellCompletion = `# tasklist PowerShell completion
Register-ArgumentCompleter -Native -CommandName tasklist -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    @('%s') | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`
