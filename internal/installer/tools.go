package installer

// Tool describes one developer tool and how to install it per platform.
// Darwin installs go through homebrew; linux platforms mostly share the
// official install scripts and only differ where a package manager is
// involved.
type Tool struct {
	Name   string
	Bin    string
	Brew   []command
	Debian []command
	RHEL   []command
}

type command []string

var kubectlLinux = []command{
	{"bash", "-c", `curl -fsSLo /usr/local/bin/kubectl "https://dl.k8s.io/release/$(curl -fsSL https://dl.k8s.io/release/stable.txt)/bin/linux/amd64/kubectl"`},
	{"chmod", "+x", "/usr/local/bin/kubectl"},
}

var kindLinux = []command{
	{"bash", "-c", "curl -fsSLo /usr/local/bin/kind https://kind.sigs.k8s.io/dl/latest/kind-linux-amd64"},
	{"chmod", "+x", "/usr/local/bin/kind"},
}

var helmLinux = []command{
	{"bash", "-c", "curl -fsSL https://raw.githubusercontent.com/helm/helm/main/scripts/get-helm-3 | bash"},
}

var eksctlLinux = []command{
	{"bash", "-c", "curl -fsSL https://github.com/eksctl-io/eksctl/releases/latest/download/eksctl_Linux_amd64.tar.gz | tar -xz -C /usr/local/bin"},
}

var awscliLinux = []command{
	{"bash", "-c", `curl -fsSLo /tmp/awscliv2.zip "https://awscli.amazonaws.com/awscli-exe-linux-x86_64.zip"`},
	{"bash", "-c", "unzip -oq /tmp/awscliv2.zip -d /tmp && /tmp/aws/install --update"},
}

// tools is the fixed install list, in install order.
var tools = []Tool{
	{
		Name:   "Go",
		Bin:    "go",
		Brew:   []command{{"brew", "install", "go"}},
		Debian: []command{{"apt-get", "install", "-y", "golang-go"}},
		RHEL:   []command{{"dnf", "install", "-y", "golang"}},
	},
	{
		Name:   "kubectl",
		Bin:    "kubectl",
		Brew:   []command{{"brew", "install", "kubectl"}},
		Debian: kubectlLinux,
		RHEL:   kubectlLinux,
	},
	{
		Name:   "kind",
		Bin:    "kind",
		Brew:   []command{{"brew", "install", "kind"}},
		Debian: kindLinux,
		RHEL:   kindLinux,
	},
	{
		Name:   "Helm",
		Bin:    "helm",
		Brew:   []command{{"brew", "install", "helm"}},
		Debian: helmLinux,
		RHEL:   helmLinux,
	},
	{
		Name:   "eksctl",
		Bin:    "eksctl",
		Brew:   []command{{"brew", "install", "eksctl"}},
		Debian: eksctlLinux,
		RHEL:   eksctlLinux,
	},
	{
		Name:   "AWS CLI",
		Bin:    "aws",
		Brew:   []command{{"brew", "install", "awscli"}},
		Debian: awscliLinux,
		RHEL:   awscliLinux,
	},
}

// commandsFor returns the install command sequence for the platform, or
// nil if the platform is unsupported for this tool.
func (t Tool) commandsFor(platform Platform) []command {
	switch platform {
	case PlatformDarwin:
		return t.Brew
	case PlatformDebian:
		return t.Debian
	case PlatformRHEL:
		return t.RHEL
	}
	return nil
}
