package constant

// AsciiArtLogo is the banner printed above the root command help.
const AsciiArtLogo = `
  ___  ___  __ _ _ __ | | __ _ _   _
 / __|/ _ \/ _' | '_ \| |/ _' | | | |
 \__ \  __/ (_| | |_) | | (_| | |_| |
 |___/\___|\__,_| .__/|_|\__,_|\__, |
                |_|            |___/`
