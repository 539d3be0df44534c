package cookies

import (
	"fmt"
	"io"
)

// PrintInstructions explains the manual import routes for when automated
// injection is not wanted.
func PrintInstructions(w io.Writer, cookieFile, site string) {
	fmt.Fprintf(w, `
Chrome encrypts its cookie store, so the export cannot be copied into it
directly. Use one of these methods:

Method 1: Cookie editor extension (recommended)
1. Install a cookie editor extension that supports JSON import
2. Open %[2]s in Chrome
3. Open the extension and choose "Import"
4. Select: %[1]s
5. Refresh %[2]s

Method 2: Chrome DevTools
1. Open %[2]s in Chrome
2. Open DevTools (F12) -> Application -> Cookies
3. Add each cookie from %[1]s by hand
4. Refresh the page

Method 3: Automated
Answer "y" below to launch Chrome and inject the cookies over DevTools.
`, cookieFile, site)
}
