package tools

import "runtime"

func installHints(tool string) []string {
	switch tool {
	case "conda":
		switch runtime.GOOS {
		case "darwin":
			return []string{
				"Install Miniconda via Homebrew: brew install --cask miniconda",
				"or download the installer from https://docs.conda.io/en/latest/miniconda.html",
			}
		case "linux":
			return []string{
				"Download and run the Miniconda installer:",
				"  curl -LO https://repo.anaconda.com/miniconda/Miniconda3-latest-Linux-x86_64.sh && bash Miniconda3-latest-Linux-x86_64.sh",
				"then restart your shell so conda is on PATH",
			}
		case "windows":
			return []string{
				"Install Miniconda via winget: winget install Anaconda.Miniconda3",
				"then run condactl from an Anaconda Prompt",
			}
		default:
			return []string{"Install Miniconda from https://docs.conda.io/en/latest/miniconda.html"}
		}
	case "python":
		return []string{
			"A system python is not required; conda will provision the interpreter inside the environment",
		}
	default:
		return nil
	}
}
