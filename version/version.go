package version

import (
	"fmt"
	"io"
	"os"
)

// 构建时通过-ldflags "-X github.com/dszqbsm/wannasurf/version.GitHash=..." 注入
var (
	BuildTS   = "None"
	GitHash   = "None"
	GitBranch = "None"
	Version   = "None"
)

// 用于获取格式化后的版本号，带上提交哈希的前7位
func GetVersion() string {
	if GitHash != "" && GitHash != "None" {
		h := GitHash
		if len(h) > 7 {
			h = h[:7]
		}
		return fmt.Sprintf("%s-%s", Version, h)
	}
	return Version
}

// 将所有版本信息写入w
func Fprint(w io.Writer) {
	fmt.Fprintln(w, "wannasurf")
	fmt.Fprintln(w, "Version:          ", GetVersion())
	fmt.Fprintln(w, "Git Branch:       ", GitBranch)
	fmt.Fprintln(w, "Git Commit:       ", GitHash)
	fmt.Fprintln(w, "Build Time (UTC): ", BuildTS)
}

// 将所有版本信息打印到控制台
func Printer() {
	Fprint(os.Stdout)
}
