/*
Package logscan extracts ICS transfer buffers from samba debug logs.

With its debug level high enough, the OpenChange server logs every
RopFastTransferSourceGetBuffer reply, including the transfer status and a
hex dump of the returned data:

	mapi_FastTransferSourceGetBuffer: struct FastTransferSourceGetBuffer_repl
	    TransferStatus           : TransferStatus_Done (0x3)
	    ...
	    TransferBuffer           : DATA_BLOB length=34
	[0000] 03 00 09 40 1F 00 01 30  0E 00 00 00 49 00 6E 00   ...@...0 ....I.n.
	[0010] ...

A transfer may span several replies; every reply before the last one has a
status other than TransferStatus_Done. A Scanner returns one Transfer per
complete sequence of replies, with the blocks merged in order.
*/
package logscan
