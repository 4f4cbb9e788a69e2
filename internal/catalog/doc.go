// Package catalog lists the specs webidl-updater processes and locates
// their sources.
//
// The catalog is a JSON object keyed by published spec URL:
//
//	{
//	  "https://dom.spec.whatwg.org/": {
//	    "shortName": "dom",
//	    "url": "https://dom.spec.whatwg.org/",
//	    "source": "https://github.com/whatwg/dom/blob/HEAD/dom.bs",
//	    "github": {"owner": "whatwg", "repo": "dom", "path": "dom.bs"}
//	  }
//	}
//
// Entries without GitHub information are fetched from their published URL.
// The Resolver guesses source locations for specs missing from the catalog.
package catalog
