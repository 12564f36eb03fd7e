package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate completion script",
	Long: `To load completions:

Bash:
  $ source <(pathweaver completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ pathweaver completion bash > /etc/bash_completion.d/pathweaver
  # macOS:
  $ pathweaver completion bash > /usr/local/etc/bash_completion.d/pathweaver

Zsh:
  $ pathweaver completion zsh > "${fpath[1]}/_pathweaver"

Fish:
  $ pathweaver completion fish | source
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			fmt.Print(bashCompletion)
		case "zsh":
			rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			rootCmd.GenPowerShellCompletion(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// bashCompletion is a handcrafted, minimal bash completion script that
// avoids the verbosity of the auto-generated one.
const bashCompletion = `
# pathweaver bash completion

_pathweaver_completion() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="run play export serve completion help"

    case "${prev}" in
        run|play)
            COMPREPLY=( $(compgen -W "--algorithm --source --target --heuristic --scale --out --help" -- ${cur}) )
            return 0
            ;;
        export)
            COMPREPLY=( $(compgen -W "--format --out --step --algorithm --source --target --help" -- ${cur}) )
            return 0
            ;;
        serve)
            COMPREPLY=( $(compgen -W "--listen --help" -- ${cur}) )
            return 0
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- ${cur}) )
            return 0
            ;;
        --algorithm|-a)
            COMPREPLY=( $(compgen -W "dijkstra astar" -- ${cur}) )
            return 0
            ;;
        --heuristic)
            COMPREPLY=( $(compgen -W "euclidean manhattan haversine zero" -- ${cur}) )
            return 0
            ;;
        --format|-f)
            COMPREPLY=( $(compgen -W "json yaml dot" -- ${cur}) )
            return 0
            ;;
        *)
            ;;
    esac

    if [[ ${cur} == -* ]] ; then
        COMPREPLY=( $(compgen -W "--config --help --version" -- ${cur}) )
        return 0
    fi

    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
}

complete -F _pathweaver_completion pathweaver
`
